// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Outcome: result of a single letter guess (hit/miss/ignored).
//   - Status:  coarse session status derived from the per-game fields.
//   - State:   immutable snapshot of a session handed to callers.

package game

import (
	"errors"

	"github.com/robalobadob/hangman/internal/words"
)

// MaxWrongGuesses is the number of misses that ends a game in a loss.
const MaxWrongGuesses = 6

// maxHintLetters bounds the letters revealed before the first guess.
const maxHintLetters = 3

var (
	// ErrInvalidLetter rejects anything that is not a single letter a–z/A–Z.
	ErrInvalidLetter = errors.New("guess must be a single letter")
	// ErrNotStarted is returned when no word is in play.
	ErrNotStarted = errors.New("no game in progress")
)

// Source is the random source used for word picks and hint shuffles.
type Source = words.Source

// Outcome is the evaluation result of one guess.
type Outcome string

const (
	OutcomeHit     Outcome = "hit"     // letter is in the word
	OutcomeMiss    Outcome = "miss"    // letter is absent; counted as wrong
	OutcomeIgnored Outcome = "ignored" // game over or letter already tried; nothing changed
)

// Present reports whether the guessed letter is in the word.
func (o Outcome) Present() bool { return o == OutcomeHit }

// Status is the engine's position in its state machine.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusPlaying    Status = "playing"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// State is a copy of a session. Mutating it never affects the engine.
type State struct {
	Wins            int         `json:"wins"`
	Losses          int         `json:"losses"`
	Theme           words.Theme `json:"theme"`
	Word            string      `json:"word"`
	Hint            string      `json:"hint"`
	GuessedLetters  []string    `json:"guessedLetters"`
	WrongGuesses    int         `json:"wrongGuesses"`
	MaxWrongGuesses int         `json:"maxWrongGuesses"`
	GameOver        bool        `json:"gameOver"`
	HintLetters     []string    `json:"hintLetters"`
}

// Status derives the coarse status from the snapshot.
func (s State) Status() Status {
	switch {
	case s.Word == "":
		return StatusNotStarted
	case !s.GameOver:
		return StatusPlaying
	case s.WrongGuesses >= s.MaxWrongGuesses:
		return StatusLost
	default:
		return StatusWon
	}
}
