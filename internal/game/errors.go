package game

import (
	"errors"
	"fmt"
)

// Failure classes for guess submission. Concrete errors wrap one of these,
// so callers match with errors.Is.
var (
	ErrValidation = errors.New("invalid guess")
	ErrNotFound   = errors.New("game not found")
	ErrGameOver   = errors.New("game finished")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the offending id.
func NotFound(id string) error { return fmt.Errorf("%w: %s", ErrNotFound, id) }

// GameOver wraps ErrGameOver with the offending id.
func GameOver(id string) error { return fmt.Errorf("%w: %s", ErrGameOver, id) }

// NotInWordList is the Validation failure for a guess outside the corpus.
func NotInWordList(guess string) error { return validationf("%q not in word list", guess) }

// Unconfirmed is the Validation failure when membership could not be
// checked, e.g. the dictionary timed out. The guess is treated as rejected.
func Unconfirmed(guess string, cause error) error {
	return fmt.Errorf("%w: could not confirm %q: %w", ErrValidation, guess, cause)
}
