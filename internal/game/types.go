// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Status: lifecycle of a session (in_progress → won | lost).
//   - Options: recognized game-creation settings.
//   - Game: state for a single in-progress or finished game.
//   - Result: what a caller learns from one accepted guess.

package game

import "github.com/robalobadob/wordle/apps/wordle-engine/internal/feedback"

// DefaultMaxGuesses is the guess budget when Options.MaxGuesses is zero.
const DefaultMaxGuesses = 6

// Status is the coarse state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses can be accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// Options are the recognized settings for starting a game.
type Options struct {
	Answer     string // fixed answer; empty means draw one from the corpus
	MaxGuesses int    // guess budget; 0 means DefaultMaxGuesses
}

// Game holds the state of a single session.
type Game struct {
	ID         string   `json:"id"`
	Answer     string   `json:"answer"`     // always lowercase
	MaxGuesses int      `json:"maxGuesses"` // immutable guess budget
	Guesses    []string `json:"guesses"`    // accepted guesses, in order
	Status     Status   `json:"status"`
}

// Result is returned for every accepted guess.
type Result struct {
	Guess            string            `json:"guess"` // normalized
	Codes            feedback.Feedback `json:"codes"`
	RemainingGuesses int               `json:"remainingGuesses"`
	Won              bool              `json:"won"`
	Lost             bool              `json:"lost"`
}
