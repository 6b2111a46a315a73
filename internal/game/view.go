// internal/game/view.go
//
// Presentation rules computed from a State snapshot.
// The engine never renders; drivers (HTTP, WebSocket, the browser client)
// use these helpers so every surface masks the word the same way.

package game

import (
	"slices"
	"strings"
)

// FigureParts are the hangman drawing stages, one per wrong guess.
var FigureParts = [MaxWrongGuesses]string{"head", "body", "right-arm", "left-arm", "left-leg", "right-leg"}

// KeyState is how a keyboard key should be drawn.
type KeyState string

const (
	KeyUnused  KeyState = "unused"
	KeyCorrect KeyState = "correct"
	KeyWrong   KeyState = "wrong"
)

// HintRevealed reports whether letter is shown as a hint letter.
// Hint letters are only visible until the first guess is made.
func (s State) HintRevealed(letter string) bool {
	return len(s.GuessedLetters) == 0 && slices.Contains(s.HintLetters, letter)
}

// VisibleHints returns the hint letters currently shown to the player.
func (s State) VisibleHints() []string {
	if len(s.GuessedLetters) > 0 {
		return []string{}
	}
	return append([]string{}, s.HintLetters...)
}

// Masked renders the word with unrevealed letters as "_".
// Spaces are kept. After a loss the whole word is shown.
func (s State) Masked() string {
	if s.Status() == StatusLost {
		return s.Word
	}
	var b strings.Builder
	for _, r := range s.Word {
		l := string(r)
		switch {
		case r == ' ':
			b.WriteRune(' ')
		case slices.Contains(s.GuessedLetters, l), s.HintRevealed(l):
			b.WriteString(l)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Figure returns the visible hangman parts for the current wrong-guess count.
func (s State) Figure() []string {
	n := min(s.WrongGuesses, len(FigureParts))
	return append([]string{}, FigureParts[:n]...)
}

// Result is the end-of-game banner, empty while the game is running.
func (s State) Result() string {
	switch s.Status() {
	case StatusWon:
		return "You Win!"
	case StatusLost:
		return "Game Over!"
	}
	return ""
}

// KeyState classifies letter for keyboard rendering; guessed keys are disabled.
func (s State) KeyState(letter string) KeyState {
	if !slices.Contains(s.GuessedLetters, letter) {
		return KeyUnused
	}
	if strings.Contains(s.Word, letter) {
		return KeyCorrect
	}
	return KeyWrong
}
