// internal/solver/solver.go
//
// Entropy-driven solver.
//
// Given the corpus and the (guess, feedback) history of a game, the solver
// narrows the candidate set and picks the guess whose feedback partitions the
// remaining candidates into the smallest expected bucket.
//
// Responsibilities:
//   - Solver: immutable view of one corpus plus search settings.
//   - Run (run.go): one solving run owning its candidate set.
//   - Opener (opener.go): the first guess, cached process-wide per corpus.
//   - Solve / Benchmark (bench.go): offline simulation.
//
// Scoring:
//
//	E(g) = Σ_pattern count²/total
//
// Ranking uses the integer Σ count², which orders guesses identically and
// never ties by rounding. Ties prefer a word that is still a candidate (it
// may win outright), then the lexicographically smallest word.

package solver

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/feedback"
)

// MaxWordLength bounds the per-worker pattern table (3^n entries).
const MaxWordLength = 10

var (
	// ErrNoCandidates means the history is inconsistent with every word.
	ErrNoCandidates = errors.New("solver: no candidate words remain")
	// ErrBadTurn means a turn does not fit the corpus word length.
	ErrBadTurn = errors.New("solver: malformed turn")
)

// WordSource supplies the corpus. words.Corpus satisfies it.
type WordSource interface {
	AllWords() []string
}

// Turn is one guess and the feedback it received.
type Turn struct {
	Guess    string
	Feedback feedback.Feedback
}

// Solver ranks guesses over a fixed corpus. It is safe for concurrent use;
// all mutable search state lives in Runs.
type Solver struct {
	words    []string
	index    map[string]int
	length   int
	patterns int
	wide     bool
	workers  int
	log      zerolog.Logger
	opener   *openerEntry
}

// Option configures a Solver.
type Option func(*Solver)

// WithWideSearch draws guess candidates from the whole corpus instead of only
// the surviving candidates. Wide search finds better splits but may propose
// words already ruled out as the answer.
func WithWideSearch(wide bool) Option { return func(s *Solver) { s.wide = wide } }

// WithWorkers bounds the parallelism of the guess search and benchmark.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the solver's logger (default: the global zerolog logger).
func WithLogger(l zerolog.Logger) Option { return func(s *Solver) { s.log = l } }

// New builds a Solver over src.AllWords(). Words must be non-empty, unique
// and of one length no longer than MaxWordLength.
func New(src WordSource, opts ...Option) (*Solver, error) {
	all := src.AllWords()
	if len(all) == 0 {
		return nil, errors.New("solver: empty corpus")
	}
	s := &Solver{
		words:   slices.Clone(all),
		index:   make(map[string]int, len(all)),
		length:  len(all[0]),
		workers: runtime.GOMAXPROCS(0),
		log:     log.Logger,
	}
	if s.length == 0 || s.length > MaxWordLength {
		return nil, fmt.Errorf("solver: word length %d not in 1..%d", s.length, MaxWordLength)
	}
	for i, w := range s.words {
		if len(w) != s.length {
			return nil, fmt.Errorf("solver: %q has %d letters, want %d", w, len(w), s.length)
		}
		if _, dup := s.index[w]; dup {
			return nil, fmt.Errorf("solver: duplicate word %q", w)
		}
		s.index[w] = i
	}
	s.patterns = feedback.Patterns(s.length)
	for _, o := range opts {
		o(s)
	}
	s.opener = openerFor(s.words)
	return s, nil
}

// WordLength is the corpus word length.
func (s *Solver) WordLength() int { return s.length }

// Words returns a copy of the corpus.
func (s *Solver) Words() []string { return slices.Clone(s.words) }

// Candidates returns the corpus words consistent with every turn.
func (s *Solver) Candidates(history []Turn) ([]string, error) {
	r, err := s.replay(history)
	if err != nil {
		return nil, err
	}
	return r.Remaining(), nil
}

// NextGuess returns the next guess for a game with the given history.
func (s *Solver) NextGuess(history []Turn) (string, error) {
	r, err := s.replay(history)
	if err != nil {
		return "", err
	}
	return r.Next()
}

func (s *Solver) replay(history []Turn) (*Run, error) {
	r := s.NewRun()
	for _, t := range history {
		if err := r.Observe(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// pick is one scored guess.
type pick struct {
	idx    int
	score  int
	isCand bool
}

func (s *Solver) better(a, b pick) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	if a.isCand != b.isCand {
		return a.isCand
	}
	return s.words[a.idx] < s.words[b.idx]
}

// best scores every guess in pool against cands and returns the winner.
// cands must be non-empty; candSet reports membership of cands.
func (s *Solver) best(pool, cands []int, candSet func(int) bool) int {
	chunks := s.workers
	if chunks > len(pool) {
		chunks = len(pool)
	}
	results := make([]pick, chunks)
	size := (len(pool) + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(s.workers)
	for c := 0; c < chunks; c++ {
		lo, hi := c*size, min((c+1)*size, len(pool))
		c := c
		g.Go(func() error {
			counts := make([]int, s.patterns)
			touched := make([]uint32, 0, s.patterns)
			top := pick{idx: -1}
			for _, gi := range pool[lo:hi] {
				p := pick{
					idx:    gi,
					score:  s.sumSquares(gi, cands, counts, &touched),
					isCand: candSet(gi),
				}
				if top.idx < 0 || s.better(p, top) {
					top = p
				}
			}
			results[c] = top
			return nil
		})
	}
	_ = g.Wait()

	top := pick{idx: -1}
	for _, p := range results {
		if p.idx >= 0 && (top.idx < 0 || s.better(p, top)) {
			top = p
		}
	}
	return top.idx
}

// sumSquares buckets cands by the feedback guess gi would get against each
// and returns Σ bucket². counts must be all zero and is left all zero.
func (s *Solver) sumSquares(gi int, cands []int, counts []int, touched *[]uint32) int {
	guess := s.words[gi]
	sum := 0
	*touched = (*touched)[:0]
	for _, ci := range cands {
		p, _ := feedback.PatternOf(guess, s.words[ci])
		if counts[p] == 0 {
			*touched = append(*touched, p)
		}
		// (c+1)² - c² = 2c+1
		sum += 2*counts[p] + 1
		counts[p]++
	}
	for _, p := range *touched {
		counts[p] = 0
	}
	return sum
}
