package game

import (
	"errors"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	g, err := New("g1", "  REACT ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if g.Answer != "react" {
		t.Errorf("answer = %q, want react", g.Answer)
	}
	if g.MaxGuesses != DefaultMaxGuesses {
		t.Errorf("maxGuesses = %d, want %d", g.MaxGuesses, DefaultMaxGuesses)
	}
	if g.Status != StatusInProgress || len(g.Guesses) != 0 {
		t.Errorf("fresh game has status %s and %d guesses", g.Status, len(g.Guesses))
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New("g1", "react", -1); !errors.Is(err, ErrValidation) {
		t.Errorf("negative budget: got %v", err)
	}
	if _, err := New("g1", "re4ct", 6); !errors.Is(err, ErrValidation) {
		t.Errorf("non-alpha answer: got %v", err)
	}
	if _, err := New("g1", "", 6); !errors.Is(err, ErrValidation) {
		t.Errorf("empty answer: got %v", err)
	}
}

func TestApplyGuessWin(t *testing.T) {
	g, _ := New("g1", "react", 6)
	res, err := g.ApplyGuess("react")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Won || res.Lost || res.Codes.String() != "ggggg" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.RemainingGuesses != 5 {
		t.Errorf("remaining = %d, want 5", res.RemainingGuesses)
	}
	if g.Status != StatusWon {
		t.Errorf("status = %s", g.Status)
	}
	if _, err := g.ApplyGuess("apple"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("guess after win: got %v", err)
	}
	if len(g.Guesses) != 1 {
		t.Fatalf("history grew after game over: %v", g.Guesses)
	}
}

func TestApplyGuessLoss(t *testing.T) {
	g, _ := New("g1", "react", 3)
	for i, w := range []string{"apple", "brave", "crane"} {
		res, err := g.ApplyGuess(w)
		if err != nil {
			t.Fatal(err)
		}
		if res.RemainingGuesses != 2-i {
			t.Errorf("after %s remaining = %d", w, res.RemainingGuesses)
		}
		if last := i == 2; res.Lost != last {
			t.Errorf("after %s lost = %v", w, res.Lost)
		}
	}
	if g.Status != StatusLost {
		t.Fatalf("status = %s", g.Status)
	}
	if _, err := g.ApplyGuess("react"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("guess after loss: got %v", err)
	}
}

func TestApplyGuessValidation(t *testing.T) {
	g, _ := New("g1", "react", 6)
	for _, w := range []string{"hi", "toolong", "", "re4ct"} {
		if _, err := g.ApplyGuess(w); !errors.Is(err, ErrValidation) {
			t.Errorf("%q: got %v", w, err)
		}
	}
	if len(g.Guesses) != 0 {
		t.Fatalf("rejected guesses recorded: %v", g.Guesses)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g, _ := New("g1", "react", 6)
	_, _ = g.ApplyGuess("apple")
	snap := g.Snapshot()
	_, _ = g.ApplyGuess("brave")
	if len(snap.Guesses) != 1 {
		t.Fatalf("snapshot changed: %v", snap.Guesses)
	}
}
