// internal/game/engine.go
//
// Core game engine for a single hangman session.
// Responsibilities:
//   - Start games by drawing a word for a theme from the catalog.
//   - Pick up to three hint letters from the word at game start.
//   - Validate and apply letter guesses.
//   - Track state transitions: not_started → playing → won/lost, and the
//     win/loss tally that survives across games.
//
// Notes:
//   - An Engine owns exactly one session and is safe for concurrent use;
//     every operation takes the engine lock, so calls are applied one at a time.
//   - Randomness comes from an injected Source so tests can be deterministic.
package game

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/robalobadob/hangman/internal/words"
)

// Engine owns one session and enforces the game rules on it.
type Engine struct {
	mu      sync.Mutex
	catalog *words.Catalog
	src     Source

	wins   int
	losses int

	theme    words.Theme
	word     string
	hint     string
	guessed  []string
	wrong    int
	gameOver bool
	hints    []string
}

// New constructs an engine with a zero tally.
// If src is nil, words.CryptoSource is used.
func New(catalog *words.Catalog, src Source) *Engine {
	if src == nil {
		src = words.CryptoSource{}
	}
	return &Engine{catalog: catalog, src: src}
}

// StartNewGame draws a fresh word for theme and clears the per-game state.
// The tally is untouched. On error the session is left as it was.
func (e *Engine) StartNewGame(theme words.Theme) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start(theme, e.src)
}

// StartNewGameWith is StartNewGame drawing the word and hint letters from src.
func (e *Engine) StartNewGameWith(theme words.Theme, src Source) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start(theme, src)
}

// Restart starts a new game on the current theme.
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.theme == "" {
		return ErrNotStarted
	}
	return e.start(e.theme, e.src)
}

func (e *Engine) start(theme words.Theme, src Source) error {
	entry, err := e.catalog.RandomWord(theme, src)
	if err != nil {
		return err
	}
	e.reset()
	e.theme = theme
	e.word = entry.Word
	e.hint = entry.Hint
	e.hints = pickHintLetters(entry.Word, src)
	return nil
}

// ResetGame clears the per-game fields and drops the current word, keeping
// the theme and the tally. Until the next StartNewGame or Restart the
// session has no word and guesses fail with ErrNotStarted.
func (e *Engine) ResetGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
	e.word, e.hint = "", ""
}

func (e *Engine) reset() {
	e.guessed = nil
	e.wrong = 0
	e.gameOver = false
	e.hints = nil
}

// MakeGuess applies one letter guess.
//
// Returns OutcomeIgnored (and changes nothing) when the game is over or the
// letter was already tried. Otherwise the letter is recorded and the result
// is OutcomeHit or OutcomeMiss; the guess that completes the word or uses up
// the last wrong guess ends the game and bumps wins or losses once.
func (e *Engine) MakeGuess(letter string) (Outcome, error) {
	l, err := normalizeLetter(letter)
	if err != nil {
		return OutcomeIgnored, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.word == "" {
		return OutcomeIgnored, ErrNotStarted
	}
	if e.gameOver || slices.Contains(e.guessed, l) {
		return OutcomeIgnored, nil
	}

	e.guessed = append(e.guessed, l)

	if !strings.Contains(e.word, l) {
		e.wrong++
		if e.wrong >= MaxWrongGuesses {
			e.gameOver = true
			e.losses++
		}
		return OutcomeMiss, nil
	}

	if e.solved() {
		e.gameOver = true
		e.wins++
	}
	return OutcomeHit, nil
}

// solved reports whether every distinct letter of the word has been guessed.
func (e *Engine) solved() bool {
	for _, l := range distinctLetters(e.word) {
		if !slices.Contains(e.guessed, l) {
			return false
		}
	}
	return true
}

// State returns a snapshot of the session.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		Wins:            e.wins,
		Losses:          e.losses,
		Theme:           e.theme,
		Word:            e.word,
		Hint:            e.hint,
		GuessedLetters:  append([]string{}, e.guessed...),
		WrongGuesses:    e.wrong,
		MaxWrongGuesses: MaxWrongGuesses,
		GameOver:        e.gameOver,
		HintLetters:     append([]string{}, e.hints...),
	}
}

// pickHintLetters shuffles the distinct letters of word (Fisher–Yates) and
// keeps the first min(3, n).
func pickHintLetters(word string, src Source) []string {
	letters := distinctLetters(word)
	for i := len(letters) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return letters[:min(maxHintLetters, len(letters))]
}

// distinctLetters lists the letters of word in first-appearance order, spaces excluded.
func distinctLetters(word string) []string {
	var out []string
	for _, r := range word {
		if r == ' ' {
			continue
		}
		if l := string(r); !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// normalizeLetter trims and uppercases a guess, accepting exactly one ASCII letter.
func normalizeLetter(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidLetter, s)
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
	case c >= 'a' && c <= 'z':
		c -= 'a' - 'A'
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLetter, s)
	}
	return string(c), nil
}
