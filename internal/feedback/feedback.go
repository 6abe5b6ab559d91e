// internal/feedback/feedback.go
//
// Letter-by-letter scoring of a guess against an answer.
//
// Responsibilities:
//   - Code: per-letter result (grey/yellow/green).
//   - Score: the two-pass, duplicate-correct Wordle algorithm.
//   - PatternOf: the same algorithm encoded as a base-3 integer, used by the
//     solver to bucket candidate answers without allocating.
//
// Notes:
//   - Letters are counted in a byte-indexed table, so scoring is total over
//     any pair of equal-length strings (callers normalize to a–z first).
//   - Exact matches always consume the answer's letter supply before any
//     yellow is handed out; yellows go to earlier guess positions first.

package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShapeMismatch is returned when guess and answer differ in length.
var ErrShapeMismatch = errors.New("feedback: guess and answer lengths differ")

// Code is the evaluation result for a single letter of a guess.
type Code uint8

const (
	Grey   Code = iota // letter absent, or its supply is used up
	Yellow             // letter present elsewhere in the answer
	Green              // letter correct and in the correct position
)

func (c Code) String() string {
	switch c {
	case Grey:
		return "grey"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	}
	return fmt.Sprintf("code(%d)", uint8(c))
}

// MarshalText renders the code by name so JSON payloads stay readable.
func (c Code) MarshalText() ([]byte, error) {
	if c > Green {
		return nil, fmt.Errorf("feedback: invalid code %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (c *Code) UnmarshalText(b []byte) error {
	switch string(b) {
	case "grey":
		*c = Grey
	case "yellow":
		*c = Yellow
	case "green":
		*c = Green
	default:
		return fmt.Errorf("feedback: unknown code %q", b)
	}
	return nil
}

// Feedback is the ordered sequence of codes for one guess.
type Feedback []Code

// Won reports whether every letter is green.
func (f Feedback) Won() bool {
	if len(f) == 0 {
		return false
	}
	for _, c := range f {
		if c != Green {
			return false
		}
	}
	return true
}

// Pattern encodes f as a base-3 number, first letter most significant.
// Two feedbacks of equal length are equal iff their patterns are equal.
func (f Feedback) Pattern() uint32 {
	var p uint32
	for _, c := range f {
		p = p*3 + uint32(c)
	}
	return p
}

// Equal reports whether f and o hold the same codes.
func (f Feedback) Equal(o Feedback) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if f[i] != o[i] {
			return false
		}
	}
	return true
}

// String returns the compact form: g=green, y=yellow, -=grey.
func (f Feedback) String() string {
	var b strings.Builder
	b.Grow(len(f))
	for _, c := range f {
		switch c {
		case Green:
			b.WriteByte('g')
		case Yellow:
			b.WriteByte('y')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Parse reads the compact form produced by String.
// Grey may also be written as '.' or 'x'; letters are case-insensitive.
func Parse(s string) (Feedback, error) {
	out := make(Feedback, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'g', 'G':
			out[i] = Green
		case 'y', 'Y':
			out[i] = Yellow
		case '-', '.', 'x', 'X':
			out[i] = Grey
		default:
			return nil, fmt.Errorf("feedback: bad code %q at %d", s[i], i)
		}
	}
	return out, nil
}

// Score compares guess against answer.
//
// Pass 1 marks exact matches green and counts the answer's leftover letters.
// Pass 2 walks the remaining positions left to right: a letter with leftover
// supply is yellow and consumes one unit, otherwise it is grey.
func Score(guess, answer string) (Feedback, error) {
	if len(guess) != len(answer) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(guess), len(answer))
	}
	out := make(Feedback, len(guess))
	score(out, guess, answer)
	return out, nil
}

// PatternOf is Score followed by Pattern, without the slice allocation for
// words up to MaxPatternLen letters.
func PatternOf(guess, answer string) (uint32, error) {
	if len(guess) != len(answer) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(guess), len(answer))
	}
	if len(guess) > MaxPatternLen {
		return 0, fmt.Errorf("feedback: pattern for %d letters overflows", len(guess))
	}
	var buf [MaxPatternLen]Code
	f := Feedback(buf[:len(guess)])
	score(f, guess, answer)
	return f.Pattern(), nil
}

// MaxPatternLen is the longest word whose pattern fits in a uint32.
const MaxPatternLen = 20

// score fills res; len(res) == len(guess) == len(answer).
func score(res Feedback, guess, answer string) {
	var counts [256]int

	// First pass: greens, and supply of the answer's unmatched letters.
	for i := 0; i < len(guess); i++ {
		if guess[i] == answer[i] {
			res[i] = Green
		} else {
			res[i] = Grey
			counts[answer[i]]++
		}
	}

	// Second pass: hand out yellows from what is left.
	for i := 0; i < len(guess); i++ {
		if res[i] == Green {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			res[i] = Yellow
			counts[c]--
		}
	}
}

// Patterns returns 3^n, the number of distinct feedbacks for n letters.
func Patterns(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}
