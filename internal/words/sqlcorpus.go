// internal/words/sqlcorpus.go
//
// SQLite-backed Corpus.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout) and applying the
//     embedded schema.
//   - Seeding the words table from a List.
//   - Serving membership checks and random draws with real queries, so the
//     latency of a dictionary lookup is genuine rather than simulated.
//
// The answer list is read once at construction; AllWords never touches the DB.

package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
)

// OpenDB opens (and creates if missing) a SQLite database and applies the
// words schema. ":memory:" gives a private in-process database. Plain paths
// and file: URIs are accepted; an existing query string is kept.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	if isMemoryDSN(dsn) {
		db, err = sql.Open("sqlite3", dsn)
		if err == nil {
			// every pooled connection would otherwise see its own empty DB
			db.SetMaxOpenConns(1)
		}
	} else {
		// Ensure directory exists for ./data/words.db, etc.
		if dir := filepath.Dir(dbPath(dsn)); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		db, err = sql.Open("sqlite3", withPragmas(dsn))
	}
	if err != nil {
		return nil, err
	}

	schema, err := assets.Schema()
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// dbPath strips the file: scheme and query string from a DSN.
func dbPath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// withPragmas appends busy timeout and WAL journaling to the DSN query.
func withPragmas(dsn string) string {
	const pragmas = "_busy_timeout=5000&_journal_mode=WAL"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}
	return dsn + "?" + pragmas
}

// Seed writes every allowed word and marks the answers, preserving the
// list's answer order. Answers from an earlier seed that l no longer
// contains are demoted to plain allowed words. It is idempotent.
func Seed(ctx context.Context, db *sql.DB, l *List) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, w := range l.Allowed() {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO words(word, is_answer, position) VALUES (?, 0, -1)`, w,
		); err != nil {
			return fmt.Errorf("seed %s: %w", w, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE words SET is_answer = 0, position = -1`); err != nil {
		return fmt.Errorf("reset answers: %w", err)
	}
	for i, w := range l.answers {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO words(word, is_answer, position) VALUES (?, 1, ?)
            ON CONFLICT(word) DO UPDATE SET is_answer = 1, position = excluded.position`,
			w, i,
		); err != nil {
			return fmt.Errorf("seed answer %s: %w", w, err)
		}
	}
	return tx.Commit()
}

// SQLCorpus is a Corpus over the words table.
type SQLCorpus struct {
	db      *sql.DB
	answers []string
}

// NewSQLCorpus loads the answer list and returns a corpus over db.
func NewSQLCorpus(ctx context.Context, db *sql.DB) (*SQLCorpus, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT word FROM words WHERE is_answer = 1 ORDER BY position ASC, word ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &SQLCorpus{db: db}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		c.answers = append(c.answers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(c.answers) == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

// IsMember looks the word up in the words table.
func (c *SQLCorpus) IsMember(ctx context.Context, word string) (bool, error) {
	var one int
	err := c.db.QueryRowContext(ctx, `SELECT 1 FROM words WHERE word = ?`, normalize(word)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RandomWord draws an answer using SQLite's RANDOM().
func (c *SQLCorpus) RandomWord(ctx context.Context) (string, error) {
	var w string
	err := c.db.QueryRowContext(ctx,
		`SELECT word FROM words WHERE is_answer = 1 ORDER BY RANDOM() LIMIT 1`).Scan(&w)
	return w, err
}

// AllWords returns a copy of the answers in seed order.
func (c *SQLCorpus) AllWords() []string { return append([]string(nil), c.answers...) }
