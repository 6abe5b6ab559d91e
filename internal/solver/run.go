package solver

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/feedback"
)

// Run is one solving run. It owns its candidate set (a bitset over corpus
// indices) and is not safe for concurrent use; start one Run per game.
type Run struct {
	s     *Solver
	cand  *bitset.BitSet
	turns int
}

// NewRun starts a run with every corpus word as a candidate.
func (s *Solver) NewRun() *Run {
	n := uint(len(s.words))
	return &Run{s: s, cand: bitset.New(n).FlipRange(0, n)}
}

// Observe narrows the candidates to words w with Score(t.Guess, w) equal to
// t.Feedback. The guess is case-folded and need not be a corpus word.
func (r *Run) Observe(t Turn) error {
	t.Guess = strings.ToLower(strings.TrimSpace(t.Guess))
	if len(t.Guess) != r.s.length || len(t.Feedback) != r.s.length {
		return fmt.Errorf("%w: %q/%s for %d-letter words", ErrBadTurn, t.Guess, t.Feedback, r.s.length)
	}
	want := t.Feedback.Pattern()
	for i, ok := r.cand.NextSet(0); ok; i, ok = r.cand.NextSet(i + 1) {
		if p, _ := feedback.PatternOf(t.Guess, r.s.words[i]); p != want {
			r.cand.Clear(i)
		}
	}
	r.turns++
	return nil
}

// Count is the number of remaining candidates.
func (r *Run) Count() int { return int(r.cand.Count()) }

// Turns is the number of observed turns.
func (r *Run) Turns() int { return r.turns }

// Remaining lists the candidates in corpus order.
func (r *Run) Remaining() []string {
	out := make([]string, 0, r.cand.Count())
	for i, ok := r.cand.NextSet(0); ok; i, ok = r.cand.NextSet(i + 1) {
		out = append(out, r.s.words[i])
	}
	return out
}

// Next returns the guess to play now:
//   - the cached opener before any turn,
//   - the last candidate when only one is left,
//   - otherwise the guess minimizing the expected remaining count.
func (r *Run) Next() (string, error) {
	if r.turns == 0 {
		return r.s.Opener(), nil
	}
	switch r.cand.Count() {
	case 0:
		return "", ErrNoCandidates
	case 1:
		i, _ := r.cand.NextSet(0)
		return r.s.words[i], nil
	}

	cands := r.indices()
	pool := cands
	if r.s.wide {
		pool = r.s.all()
	}
	return r.s.words[r.s.best(pool, cands, func(i int) bool { return r.cand.Test(uint(i)) })], nil
}

func (r *Run) indices() []int {
	out := make([]int, 0, r.cand.Count())
	for i, ok := r.cand.NextSet(0); ok; i, ok = r.cand.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

func (s *Solver) all() []int {
	out := make([]int, len(s.words))
	for i := range out {
		out[i] = i
	}
	return out
}
