package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/feedback"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// Solution is the outcome of one simulated game.
type Solution struct {
	Answer  string
	Guesses []string // every guess played, the answer last when Solved
	Solved  bool
}

// Contains reports whether w is a corpus word.
func (s *Solver) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

// Solve plays against answer until it is guessed or maxGuesses run out.
// A maxGuesses of zero selects game.DefaultMaxGuesses. An answer outside the
// corpus ends unsolved once no candidate is left.
func (s *Solver) Solve(answer string, maxGuesses int) (Solution, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if len(answer) != s.length {
		return Solution{}, fmt.Errorf("solver: answer %q has %d letters, want %d", answer, len(answer), s.length)
	}
	if maxGuesses <= 0 {
		maxGuesses = game.DefaultMaxGuesses
	}

	sol := Solution{Answer: answer}
	run := s.NewRun()
	for len(sol.Guesses) < maxGuesses {
		g, err := run.Next()
		if errors.Is(err, ErrNoCandidates) {
			return sol, nil
		}
		if err != nil {
			return sol, err
		}
		sol.Guesses = append(sol.Guesses, g)
		if g == answer {
			sol.Solved = true
			return sol, nil
		}
		fb, err := feedback.Score(g, answer)
		if err != nil {
			return sol, err
		}
		if err := run.Observe(Turn{Guess: g, Feedback: fb}); err != nil {
			return sol, err
		}
	}
	return sol, nil
}

// BenchmarkOptions configures Benchmark.
type BenchmarkOptions struct {
	MaxGuesses int       // 0 → game.DefaultMaxGuesses
	Words      []string  // answers to solve; nil → the whole corpus
	Progress   io.Writer // optional progress bar output
}

// Report aggregates a benchmark.
type Report struct {
	Total       int
	MaxGuesses  int
	Solved      []int // Solved[n]: answers found with exactly n guesses
	Failed      int
	FailedWords []string
	Average     float64 // mean guesses over solved answers
	SuccessRate float64
	Elapsed     time.Duration
}

// Within is the fraction of all answers solved in at most n guesses.
func (r Report) Within(n int) float64 {
	if r.Total == 0 {
		return 0
	}
	k := 0
	for i := 1; i <= n && i < len(r.Solved); i++ {
		k += r.Solved[i]
	}
	return float64(k) / float64(r.Total)
}

// Benchmark solves every requested answer in parallel and aggregates the
// guess-count distribution. Each solve owns its own Run. Cancelling ctx
// stops outstanding work and returns ctx's error.
func (s *Solver) Benchmark(ctx context.Context, opts BenchmarkOptions) (Report, error) {
	maxGuesses := opts.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = game.DefaultMaxGuesses
	}
	answers := opts.Words
	if answers == nil {
		answers = s.words
	}

	start := time.Now()
	s.Opener()

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(answers),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("solving"),
			progressbar.OptionShowCount(),
		)
	}

	results := make([]Solution, len(answers))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, w := range answers {
		i, w := i, w
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sol, err := s.Solve(w, maxGuesses)
			if err != nil {
				return err
			}
			results[i] = sol
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	rep := Report{
		Total:      len(answers),
		MaxGuesses: maxGuesses,
		Solved:     make([]int, maxGuesses+1),
	}
	guesses := 0
	for _, sol := range results {
		if !sol.Solved {
			rep.Failed++
			rep.FailedWords = append(rep.FailedWords, sol.Answer)
			continue
		}
		rep.Solved[len(sol.Guesses)]++
		guesses += len(sol.Guesses)
	}
	if solved := rep.Total - rep.Failed; solved > 0 {
		rep.Average = float64(guesses) / float64(solved)
	}
	if rep.Total > 0 {
		rep.SuccessRate = float64(rep.Total-rep.Failed) / float64(rep.Total)
	}
	rep.Elapsed = time.Since(start)

	s.log.Info().
		Int("total", rep.Total).
		Ints("distribution", rep.Solved[1:]).
		Int("failed", rep.Failed).
		Float64("average", rep.Average).
		Float64("successRate", rep.SuccessRate).
		Dur("elapsed", rep.Elapsed).
		Msg("benchmark finished")
	return rep, nil
}
