// main.go
//
// Entry point for the Wordle engine.
//
// Loads configuration, builds the corpus (embedded lists, files or SQLite),
// plays one self-driven game through the session store and then benchmarks
// the solver over every answer.

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/solver"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

func main() {
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	list, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, allowed := list.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	var corpus words.Corpus = list
	if cfg.DSN != "" {
		db, err := words.OpenDB(ctx, cfg.DSN)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.DSN).Msg("failed to open database")
		}
		defer db.Close()
		if err := words.Seed(ctx, db, list); err != nil {
			log.Fatal().Err(err).Msg("failed to seed words")
		}
		if corpus, err = words.NewSQLCorpus(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to load words from database")
		}
		log.Info().Str("dsn", cfg.DSN).Msg("serving words from sqlite")
	}
	if cfg.DailySalt != "" {
		corpus = daily.NewCorpus(corpus, cfg.DailySalt)
	}

	s, err := solver.New(corpus,
		solver.WithWideSearch(cfg.SolverWide),
		solver.WithWorkers(cfg.SolverWorkers),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build solver")
	}

	mem := store.NewMemoryStore(corpus)
	if err := selfPlay(ctx, mem, s, cfg.MaxGuesses); err != nil {
		log.Fatal().Err(err).Msg("self-play failed")
	}

	var progress io.Writer
	if cfg.BenchProgress {
		progress = os.Stderr
	}
	if _, err := s.Benchmark(ctx, solver.BenchmarkOptions{
		MaxGuesses: cfg.MaxGuesses,
		Progress:   progress,
	}); err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
}

// selfPlay starts a game and lets the solver play it through st.
func selfPlay(ctx context.Context, st store.Store, s *solver.Solver, maxGuesses int) error {
	id, err := st.StartGame(ctx, game.Options{MaxGuesses: maxGuesses})
	if err != nil {
		return err
	}

	var history []solver.Turn
	for {
		guess, err := s.NextGuess(history)
		if errors.Is(err, solver.ErrNoCandidates) {
			break
		}
		if err != nil {
			return err
		}
		res, err := st.SubmitGuess(ctx, id, guess)
		if err != nil {
			return err
		}
		log.Debug().Str("guess", res.Guess).Stringer("feedback", res.Codes).Msg("self-play turn")
		history = append(history, solver.Turn{Guess: res.Guess, Feedback: res.Codes})
		if res.Won || res.Lost {
			break
		}
	}

	g, _ := st.GetGame(id)
	log.Info().
		Str("game", g.ID).
		Str("answer", g.Answer).
		Strs("guesses", g.Guesses).
		Str("status", string(g.Status)).
		Msg("self-play finished")
	return nil
}
