// internal/game/engine.go
//
// Core game engine for a single session.
// Responsibilities:
//   - Create new games with a normalized answer and a guess budget.
//   - Validate the shape of guesses (length, alphabetic).
//   - Score guesses via the feedback package and apply state transitions:
//     in_progress → won/lost.
//
// Notes:
//   - A Game is not safe for concurrent use; the store serializes access.
//   - Dictionary membership is the store's concern (it may be slow), so
//     ApplyGuess only checks what it can decide locally.

package game

import (
	"strings"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/feedback"
)

// New constructs a game. A zero maxGuesses selects DefaultMaxGuesses.
func New(id, answer string, maxGuesses int) (*Game, error) {
	answer = Normalize(answer)
	if answer == "" || !isAlpha(answer) {
		return nil, validationf("answer %q must be alphabetic", answer)
	}
	switch {
	case maxGuesses == 0:
		maxGuesses = DefaultMaxGuesses
	case maxGuesses < 0:
		return nil, validationf("maxGuesses must be positive, got %d", maxGuesses)
	}
	return &Game{
		ID:         id,
		Answer:     answer,
		MaxGuesses: maxGuesses,
		Guesses:    []string{},
		Status:     StatusInProgress,
	}, nil
}

// Normalize case-folds and trims a word.
func Normalize(w string) string { return strings.ToLower(strings.TrimSpace(w)) }

// Check validates the shape of a normalized guess against this game.
func (g *Game) Check(guess string) error {
	if len(guess) != len(g.Answer) {
		return validationf("%q has %d letters, want %d", guess, len(guess), len(g.Answer))
	}
	if !isAlpha(guess) {
		return validationf("%q is not alphabetic", guess)
	}
	return nil
}

// ApplyGuess scores a normalized guess and records it.
// On any error the game is left exactly as it was.
//
// State transitions:
//   - guess == answer → won.
//   - else if the budget is now spent → lost.
func (g *Game) ApplyGuess(guess string) (Result, error) {
	if g.Status.Terminal() {
		return Result{}, GameOver(g.ID)
	}
	if err := g.Check(guess); err != nil {
		return Result{}, err
	}

	codes, err := feedback.Score(guess, g.Answer)
	if err != nil {
		return Result{}, validationf("%v", err)
	}
	g.Guesses = append(g.Guesses, guess)

	won := guess == g.Answer
	lost := !won && len(g.Guesses) >= g.MaxGuesses
	switch {
	case won:
		g.Status = StatusWon
	case lost:
		g.Status = StatusLost
	}
	return Result{
		Guess:            guess,
		Codes:            codes,
		RemainingGuesses: g.Remaining(),
		Won:              won,
		Lost:             lost,
	}, nil
}

// Remaining is the number of guesses still allowed.
func (g *Game) Remaining() int { return g.MaxGuesses - len(g.Guesses) }

// Snapshot returns a deep copy safe to hand to other goroutines.
func (g *Game) Snapshot() Game {
	c := *g
	c.Guesses = append([]string(nil), g.Guesses...)
	return c
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
