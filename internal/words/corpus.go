// internal/words/corpus.go
//
// The corpus collaborator consumed by the game store and the solver.
//
// Corpus is the capability; List is the in-memory implementation used by
// default. List keeps two lists:
//   - answers: words that may be drawn and that the solver ranks over.
//   - allowed: words accepted as guesses (always a superset of answers).
//
// List can simulate a slow dictionary service (WithLatency) so callers are
// exercised against a membership check that is not instantaneous.

package words

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand"
	"time"

	"golang.org/x/exp/slices"
)

// Corpus is a fixed-length word list with membership and random draw.
type Corpus interface {
	// IsMember reports whether word is an accepted guess.
	// It may block; implementations honour ctx.
	IsMember(ctx context.Context, word string) (bool, error)

	// RandomWord draws an answer.
	RandomWord(ctx context.Context) (string, error)

	// AllWords returns the answer list in a stable order.
	AllWords() []string
}

// ErrEmpty is returned when a corpus would have no answers.
var ErrEmpty = errors.New("words: answers list is empty")

// List is an in-memory Corpus. It is safe for concurrent use.
type List struct {
	answers    []string
	allowed    map[string]struct{} // answers ∪ extra guesses
	length     int
	minLatency time.Duration
	maxLatency time.Duration
}

// Option configures a List.
type Option func(*List)

// WithAllowed adds extra accepted guesses. Words whose length differs from
// the answers' are dropped, since they could never be valid guesses.
func WithAllowed(extra []string) Option {
	return func(l *List) {
		for _, w := range extra {
			w = normalize(w)
			if len(w) == l.length && isAlpha(w) {
				l.allowed[w] = struct{}{}
			}
		}
	}
}

// WithLatency makes IsMember wait a random duration in [min, max].
func WithLatency(min, max time.Duration) Option {
	return func(l *List) {
		if max < min {
			max = min
		}
		l.minLatency, l.maxLatency = min, max
	}
}

// NewList builds a List. Answers are normalized and de-duplicated, keeping
// first-seen order; they must all be alphabetic and of the same length.
func NewList(answers []string, opts ...Option) (*List, error) {
	l := &List{allowed: make(map[string]struct{}, len(answers))}
	for _, w := range answers {
		w = normalize(w)
		if w == "" {
			continue
		}
		if !isAlpha(w) {
			return nil, fmt.Errorf("words: %q is not alphabetic", w)
		}
		if l.length == 0 {
			l.length = len(w)
		}
		if len(w) != l.length {
			return nil, fmt.Errorf("words: %q has %d letters, want %d", w, len(w), l.length)
		}
		if _, dup := l.allowed[w]; dup {
			continue
		}
		l.allowed[w] = struct{}{}
		l.answers = append(l.answers, w)
	}
	if len(l.answers) == 0 {
		return nil, ErrEmpty
	}
	for _, o := range opts {
		o(l)
	}
	return l, nil
}

// IsMember reports whether w is a valid guess (answers ∪ allowed).
func (l *List) IsMember(ctx context.Context, w string) (bool, error) {
	if err := l.wait(ctx); err != nil {
		return false, err
	}
	_, ok := l.allowed[normalize(w)]
	return ok, nil
}

// RandomWord returns a cryptographically random answer.
func (l *List) RandomWord(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return "", err
	}
	return l.answers[n.Int64()], nil
}

// AllWords returns a copy of the answer list.
func (l *List) AllWords() []string { return append([]string(nil), l.answers...) }

// Allowed returns every accepted guess, sorted.
func (l *List) Allowed() []string {
	out := make([]string, 0, len(l.allowed))
	for w := range l.allowed {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// WordLength is the common length of every word.
func (l *List) WordLength() int { return l.length }

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowed)
}

func (l *List) wait(ctx context.Context) error {
	if l.maxLatency <= 0 {
		return ctx.Err()
	}
	d := l.minLatency
	if span := l.maxLatency - l.minLatency; span > 0 {
		d += time.Duration(mrand.Int63n(int64(span) + 1))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
