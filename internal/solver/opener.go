package solver

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"
)

// openerEntry caches the opening guess for one corpus. It is written once
// under once and read-only afterwards.
type openerEntry struct {
	once     sync.Once
	word     string
	computed atomic.Int32 // times the search actually ran; 1 after first use
}

// openers maps a corpus fingerprint to its entry, shared by every Solver in
// the process.
var openers sync.Map

func openerFor(words []string) *openerEntry {
	e, _ := openers.LoadOrStore(fingerprint(words), &openerEntry{})
	return e.(*openerEntry)
}

// fingerprint identifies a corpus by content and order.
func fingerprint(words []string) string {
	h := sha256.New()
	for _, w := range words {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Opener is the best first guess over the full corpus. The search runs at
// most once per corpus per process; later calls return the cached word.
func (s *Solver) Opener() string {
	s.opener.once.Do(func() {
		start := time.Now()
		all := s.all()
		s.opener.word = s.words[s.best(all, all, func(int) bool { return true })]
		s.opener.computed.Add(1)
		s.log.Info().
			Str("opener", s.opener.word).
			Int("corpus", len(s.words)).
			Dur("took", time.Since(start)).
			Msg("computed opening guess")
	})
	return s.opener.word
}
