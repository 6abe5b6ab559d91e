// internal/store/memory.go
//
// In-memory game store: the owner of every live session.
//
// Characteristics:
//   - The id → session map is guarded by an RWMutex that is only held for
//     lookups and inserts, never across a guess.
//   - Each session has its own mutex. Guesses to one game are serialized;
//     guesses to different games never contend.
//   - The (possibly slow) dictionary check runs without any lock. The
//     terminal/budget check is repeated under the session lock right before
//     the append, which is the point at which a guess takes effect.
//   - State is lost when the process exits.

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

// Store defines the game session operations.
type Store interface {
	// StartGame creates a game and returns its id.
	StartGame(ctx context.Context, opts game.Options) (string, error)

	// SubmitGuess validates, scores and records one guess.
	// Errors wrap game.ErrNotFound, game.ErrGameOver or game.ErrValidation.
	SubmitGuess(ctx context.Context, id, guess string) (game.Result, error)

	// GetGame returns a snapshot, or false if id is unknown.
	GetGame(id string) (game.Game, bool)
}

// session pairs a game with the lock that serializes its mutations.
type session struct {
	mu sync.Mutex
	g  *game.Game
}

// Memory is the map-based Store implementation.
type Memory struct {
	mu     sync.RWMutex        // guards games
	games  map[string]*session // keyed by Game.ID
	corpus words.Corpus
	log    zerolog.Logger
}

// Option configures a Memory store.
type Option func(*Memory)

// WithLogger sets the store's logger (default: the global zerolog logger).
func WithLogger(l zerolog.Logger) Option { return func(m *Memory) { m.log = l } }

// NewMemoryStore constructs an empty store drawing answers from corpus.
func NewMemoryStore(corpus words.Corpus, opts ...Option) *Memory {
	m := &Memory{
		games:  make(map[string]*session),
		corpus: corpus,
		log:    log.Logger,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// StartGame creates a game. If opts.Answer is empty, one is drawn from the
// corpus; the draw happens before any lock is taken.
func (m *Memory) StartGame(ctx context.Context, opts game.Options) (string, error) {
	answer := opts.Answer
	if answer == "" {
		w, err := m.corpus.RandomWord(ctx)
		if err != nil {
			return "", err
		}
		answer = w
	}

	g, err := game.New(uuid.NewString(), answer, opts.MaxGuesses)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.games[g.ID] = &session{g: g}
	m.mu.Unlock()

	m.log.Debug().Str("gameId", g.ID).Int("maxGuesses", g.MaxGuesses).Msg("game started")
	return g.ID, nil
}

// SubmitGuess runs the guess pipeline for one game:
//  1. unknown id → NotFound
//  2. terminal game → GameOver
//  3. wrong shape or not in the corpus → Validation
//  4. score, append, and update status under the session lock
//
// Rejected guesses never touch the game.
func (m *Memory) SubmitGuess(ctx context.Context, id, guess string) (game.Result, error) {
	s, ok := m.lookup(id)
	if !ok {
		return game.Result{}, game.NotFound(id)
	}

	guess = game.Normalize(guess)

	// Early checks. The answer is immutable, so shape can be checked from
	// the same critical section as the status.
	s.mu.Lock()
	terminal := s.g.Status.Terminal()
	shapeErr := s.g.Check(guess)
	s.mu.Unlock()
	if terminal {
		return game.Result{}, game.GameOver(id)
	}
	if shapeErr != nil {
		return game.Result{}, shapeErr
	}

	member, err := m.corpus.IsMember(ctx, guess)
	if err != nil {
		m.log.Warn().Err(err).Str("gameId", id).Str("guess", guess).Msg("membership check failed")
		return game.Result{}, game.Unconfirmed(guess, err)
	}
	if !member {
		return game.Result{}, game.NotInWordList(guess)
	}

	s.mu.Lock()
	res, err := s.g.ApplyGuess(guess)
	status := s.g.Status
	s.mu.Unlock()
	if err != nil {
		return game.Result{}, err
	}

	ev := m.log.Debug()
	if status.Terminal() {
		ev = m.log.Info()
	}
	ev.Str("gameId", id).
		Str("guess", guess).
		Str("codes", res.Codes.String()).
		Int("remaining", res.RemainingGuesses).
		Str("status", string(status)).
		Msg("guess accepted")
	return res, nil
}

// GetGame returns a detached snapshot of the game.
func (m *Memory) GetGame(id string) (game.Game, bool) {
	s, ok := m.lookup(id)
	if !ok {
		return game.Game{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Snapshot(), true
}

// Len reports how many games the store holds.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

func (m *Memory) lookup(id string) (*session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	return s, ok
}

var _ Store = (*Memory)(nil)
