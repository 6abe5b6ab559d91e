// internal/words/words.go
//
// Word list loading.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files, or fall back to the
//     lists embedded in the assets package.
//   - Provide the process-wide Default list built from the embedded data.
//
// Load behavior:
//  1. If both answersPath and allowedPath are set,
//     load answers from the first and extra guesses from the second.
//  2. If only allowedPath is set,
//     load that file and use it for both answers and allowed guesses.
//  3. If only answersPath is set, use it for answers with no extras.
//  4. If neither is set, use the embedded defaults.
//
// Constraints:
//   - Words must be alphabetic (a–z) after lowercasing.
//   - Answers must share one length; extras of any other length are dropped.

package words

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
)

var (
	defaultOnce sync.Once
	defaultList *List
	defaultErr  error
)

// Default returns the embedded list, built once.
func Default() (*List, error) {
	defaultOnce.Do(func() {
		defaultList, defaultErr = Load("", "")
	})
	return defaultList, defaultErr
}

// Load builds a List from the given files (see package comment).
func Load(answersPath, allowedPath string, opts ...Option) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	case answersPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}

	default:
		if ansList, err = assets.Answers(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if allowList, err = assets.Allowed(); err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
	}

	return NewList(ansList, append([]Option{WithAllowed(allowList)}, opts...)...)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	return assets.ParseWords(f)
}

func normalize(w string) string { return strings.ToLower(strings.TrimSpace(w)) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
