// Package assets embeds the default word lists and the SQL corpus schema.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed allowed.txt answers.txt schema.sql
var FS embed.FS

// ParseWords reads one word per line, lowercased.
// Blank lines and lines starting with '#' are skipped.
func ParseWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

func readWords(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWords(f)
}

// Answers is the embedded default answer list.
func Answers() ([]string, error) { return readWords("answers.txt") }

// Allowed is the embedded list of extra accepted guesses.
func Allowed() ([]string, error) { return readWords("allowed.txt") }

// Schema is the DDL for the SQL-backed corpus.
func Schema() (string, error) {
	b, err := FS.ReadFile("schema.sql")
	return string(b), err
}
