// Package daily picks one deterministic answer per UTC day.
package daily

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Corpus wraps another corpus so that RandomWord returns the word of the
// day. Membership and the word list are passed through unchanged.
type Corpus struct {
	words.Corpus
	salt    string
	answers []string
	now     func() time.Time
}

// NewCorpus wraps c. The answer list is captured once.
func NewCorpus(c words.Corpus, salt string) *Corpus {
	return &Corpus{Corpus: c, salt: salt, answers: c.AllWords(), now: time.Now}
}

// RandomWord returns today's word.
func (c *Corpus) RandomWord(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(c.answers) == 0 {
		return "", words.ErrEmpty
	}
	return c.answers[WordIndex(c.now(), c.salt, len(c.answers))], nil
}
