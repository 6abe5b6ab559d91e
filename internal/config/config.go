// internal/config/config.go
//
// Process configuration read from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every tunable of the engine binary.
type Config struct {
	LogLevel      zerolog.Level
	AnswersFile   string // empty: embedded list
	AllowedFile   string
	DSN           string // non-empty: serve the corpus from SQLite
	DailySalt     string // non-empty: draw the word of the day
	MaxGuesses    int
	SolverWide    bool
	SolverWorkers int // 0: GOMAXPROCS
	BenchProgress bool
}

// Load reads .env (if any) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return Config{
		LogLevel:      lvl,
		AnswersFile:   getEnv("WORDS_ANSWERS_FILE", ""),
		AllowedFile:   getEnv("WORDS_ALLOWED_FILE", ""),
		DSN:           getEnv("WORDS_DSN", ""),
		DailySalt:     getEnv("DAILY_SALT", ""),
		MaxGuesses:    envInt("MAX_GUESSES", 6),
		SolverWide:    envBool("SOLVER_WIDE", false),
		SolverWorkers: envInt("SOLVER_WORKERS", 0),
		BenchProgress: envBool("BENCH_PROGRESS", false),
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	n, err := strconv.Atoi(getEnv(k, ""))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envBool(k string, def bool) bool {
	b, err := strconv.ParseBool(getEnv(k, ""))
	if err != nil {
		return def
	}
	return b
}
