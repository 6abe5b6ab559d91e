package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

func newStore(t *testing.T, opts ...words.Option) *Memory {
	t.Helper()
	def, err := words.Default()
	if err != nil {
		t.Fatal(err)
	}
	l, err := words.NewList(def.AllWords(), append([]words.Option{words.WithAllowed(def.Allowed())}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return NewMemoryStore(l, WithLogger(zerolog.Nop()))
}

func start(t *testing.T, s *Memory, opts game.Options) string {
	t.Helper()
	id, err := s.StartGame(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestStartGameDefaults(t *testing.T) {
	s := newStore(t)
	id := start(t, s, game.Options{})
	g, ok := s.GetGame(id)
	if !ok {
		t.Fatal("game not found")
	}
	if g.MaxGuesses != 6 || len(g.Guesses) != 0 || g.Status != game.StatusInProgress {
		t.Fatalf("unexpected fresh game %+v", g)
	}
	if len(g.Answer) != 5 {
		t.Fatalf("drawn answer %q", g.Answer)
	}
}

func TestStartGameOptions(t *testing.T) {
	s := newStore(t)
	id := start(t, s, game.Options{Answer: "TESTS", MaxGuesses: 3})
	g, _ := s.GetGame(id)
	if g.Answer != "tests" || g.MaxGuesses != 3 {
		t.Fatalf("got %+v", g)
	}
	if _, err := s.StartGame(context.Background(), game.Options{MaxGuesses: -2}); !errors.Is(err, game.ErrValidation) {
		t.Fatalf("negative budget: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("store holds %d games", s.Len())
	}
}

func TestSubmitGuessScoring(t *testing.T) {
	s := newStore(t)
	cases := []struct{ answer, guess, want string }{
		{"paper", "apple", "yyg-y"},
		{"sheep", "creep", "--ggg"},
		{"crane", "abate", "--g-g"},
		{"react", "wound", "-----"},
	}
	for _, tc := range cases {
		id := start(t, s, game.Options{Answer: tc.answer})
		res, err := s.SubmitGuess(context.Background(), id, tc.guess)
		if err != nil {
			t.Fatalf("%s/%s: %v", tc.answer, tc.guess, err)
		}
		if res.Codes.String() != tc.want {
			t.Errorf("%s/%s: codes %s, want %s", tc.answer, tc.guess, res.Codes, tc.want)
		}
	}

	id := start(t, s, game.Options{Answer: "REACT"})
	res, err := s.SubmitGuess(context.Background(), id, "React")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Guess != "react" || res.Codes.String() != "ggggg" {
		t.Fatalf("got %+v", res)
	}
}

func TestSubmitGuessNotFound(t *testing.T) {
	s := newStore(t)
	if _, err := s.SubmitGuess(context.Background(), "invalid-id", "react"); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if _, ok := s.GetGame("invalid-id"); ok {
		t.Fatal("unknown id reported present")
	}
}

func TestSubmitGuessValidation(t *testing.T) {
	s := newStore(t)
	id := start(t, s, game.Options{Answer: "react"})
	for _, w := range []string{"HI", "TOOLONG", "", "XXXXX", "r3act"} {
		if _, err := s.SubmitGuess(context.Background(), id, w); !errors.Is(err, game.ErrValidation) {
			t.Errorf("%q: got %v", w, err)
		}
	}
	g, _ := s.GetGame(id)
	if len(g.Guesses) != 0 {
		t.Fatalf("rejected guesses recorded: %v", g.Guesses)
	}

	res, err := s.SubmitGuess(context.Background(), id, "APPLE")
	if err != nil {
		t.Fatal(err)
	}
	if res.Guess != "apple" {
		t.Fatalf("guess = %q", res.Guess)
	}
}

func TestSubmitGuessMembershipTimeout(t *testing.T) {
	s := newStore(t, words.WithLatency(time.Second, time.Second))
	id := start(t, s, game.Options{Answer: "react"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.SubmitGuess(ctx, id, "apple")
	if !errors.Is(err, game.ErrValidation) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
	g, _ := s.GetGame(id)
	if len(g.Guesses) != 0 {
		t.Fatalf("unconfirmed guess recorded: %v", g.Guesses)
	}
}

func TestGameFlow(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	id := start(t, s, game.Options{Answer: "react", MaxGuesses: 3})
	for i, w := range []string{"apple", "brave", "crane"} {
		res, err := s.SubmitGuess(ctx, id, w)
		if err != nil {
			t.Fatal(err)
		}
		if res.RemainingGuesses != 2-i {
			t.Fatalf("%s: remaining %d", w, res.RemainingGuesses)
		}
		if res.Lost != (i == 2) {
			t.Fatalf("%s: lost = %v", w, res.Lost)
		}
	}
	if _, err := s.SubmitGuess(ctx, id, "react"); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("after loss: %v", err)
	}
	if g, _ := s.GetGame(id); g.Status != game.StatusLost || len(g.Guesses) != 3 {
		t.Fatalf("final state %+v", g)
	}

	id = start(t, s, game.Options{Answer: "react"})
	if _, err := s.SubmitGuess(ctx, id, "react"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitGuess(ctx, id, "apple"); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("after win: %v", err)
	}
	// GameOver wins over Validation for a finished game
	if _, err := s.SubmitGuess(ctx, id, "hi"); !errors.Is(err, game.ErrGameOver) {
		t.Fatalf("invalid guess after win: %v", err)
	}
}

// submitAll fires every guess at once and tallies the outcomes.
func submitAll(t *testing.T, s *Memory, id string, guesses []string) (ok, over int) {
	t.Helper()
	var wg sync.WaitGroup
	var okN, overN atomic.Int32
	ready := make(chan struct{})
	for _, w := range guesses {
		wg.Add(1)
		go func(w string) {
			defer wg.Done()
			<-ready
			_, err := s.SubmitGuess(context.Background(), id, w)
			switch {
			case err == nil:
				okN.Add(1)
			case errors.Is(err, game.ErrGameOver):
				overN.Add(1)
			default:
				t.Errorf("%s: unexpected error %v", w, err)
			}
		}(w)
	}
	close(ready)
	wg.Wait()
	return int(okN.Load()), int(overN.Load())
}

func TestConcurrentGuessesRespectBudget(t *testing.T) {
	s := newStore(t, words.WithLatency(time.Millisecond, 5*time.Millisecond))
	id := start(t, s, game.Options{Answer: "react", MaxGuesses: 2})

	ok, over := submitAll(t, s, id, []string{"apple", "brave", "crane", "dream", "eight"})
	if ok != 2 || over != 3 {
		t.Fatalf("accepted %d, game-over %d; want 2 and 3", ok, over)
	}
	g, _ := s.GetGame(id)
	if len(g.Guesses) != 2 || g.Status != game.StatusLost {
		t.Fatalf("final state %+v", g)
	}
}

func TestConcurrentGuessesStopAtWin(t *testing.T) {
	s := newStore(t, words.WithLatency(0, 2*time.Millisecond))
	id := start(t, s, game.Options{Answer: "react"})

	guesses := make([]string, 20)
	for i := range guesses {
		guesses[i] = "react"
	}
	ok, over := submitAll(t, s, id, guesses)
	if ok != 1 || over != 19 {
		t.Fatalf("accepted %d, game-over %d; want 1 and 19", ok, over)
	}
	g, _ := s.GetGame(id)
	if g.Status != game.StatusWon || len(g.Guesses) != 1 {
		t.Fatalf("final state %+v", g)
	}
}

func TestConcurrentHistoryNeverExceedsBudget(t *testing.T) {
	const budget = 6
	s := newStore(t, words.WithLatency(0, 3*time.Millisecond))
	id := start(t, s, game.Options{Answer: "react", MaxGuesses: budget})

	stop := make(chan struct{})
	watched := make(chan int)
	go func() {
		most := 0
		for {
			select {
			case <-stop:
				watched <- most
				return
			default:
			}
			if g, _ := s.GetGame(id); len(g.Guesses) > most {
				most = len(g.Guesses)
			}
		}
	}()

	pool := []string{"apple", "brave", "crane", "dream", "eight", "about", "above", "actor"}
	var guesses []string
	for i := 0; i < 50; i++ {
		guesses = append(guesses, pool[i%len(pool)])
	}
	ok, over := submitAll(t, s, id, guesses)
	close(stop)
	most := <-watched

	if ok != budget || over != len(guesses)-budget {
		t.Fatalf("accepted %d, game-over %d", ok, over)
	}
	if most > budget {
		t.Fatalf("observed %d guesses, budget %d", most, budget)
	}
}

// gated blocks membership checks for one word until released.
type gated struct {
	words.Corpus
	word    string
	entered chan struct{}
	release chan struct{}
}

func (g *gated) IsMember(ctx context.Context, w string) (bool, error) {
	if w == g.word {
		close(g.entered)
		select {
		case <-g.release:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return g.Corpus.IsMember(ctx, w)
}

func TestGamesProgressIndependently(t *testing.T) {
	def, _ := words.Default()
	c := &gated{Corpus: def, word: "apple", entered: make(chan struct{}), release: make(chan struct{})}
	s := NewMemoryStore(c, WithLogger(zerolog.Nop()))
	slow := start(t, s, game.Options{Answer: "react"})
	fast := start(t, s, game.Options{Answer: "crane"})

	done := make(chan error, 1)
	go func() {
		_, err := s.SubmitGuess(context.Background(), slow, "apple")
		done <- err
	}()
	<-c.entered

	// game "slow" is parked inside its membership check
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := s.SubmitGuess(ctx, fast, "brave")
	if err != nil {
		t.Fatalf("other game blocked: %v", err)
	}
	if res.Guess != "brave" {
		t.Fatalf("got %+v", res)
	}
	if _, ok := s.GetGame(slow); !ok {
		t.Fatal("snapshot of parked game unavailable")
	}

	close(c.release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
