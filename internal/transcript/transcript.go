// Package transcript loads captured shell output and compares it against
// golden transcripts. Comparison is strictly positional: the contract being
// tested is that the shell produces exactly these lines in exactly this
// order, so a single inserted line is allowed to cascade into mismatches
// for everything after it.
package transcript

import (
	"fmt"
	"os"
	"strings"
)

// Mismatch records one position where the actual and expected transcripts
// differ. Line is 1-based for human reporting. A side that is shorter than
// the other contributes an empty string at each missing position.
type Mismatch struct {
	Line     int
	Actual   string
	Expected string
}

// Compare diffs two normalized transcripts position by position. An empty
// result means the transcripts are identical (PASS).
func Compare(actual, expected []string) []Mismatch {
	n := len(actual)
	if len(expected) > n {
		n = len(expected)
	}

	var mismatches []Mismatch
	for i := 0; i < n; i++ {
		var a, e string
		if i < len(actual) {
			a = actual[i]
		}
		if i < len(expected) {
			e = expected[i]
		}
		if a != e {
			mismatches = append(mismatches, Mismatch{Line: i + 1, Actual: a, Expected: e})
		}
	}
	return mismatches
}

// ReadLines reads a transcript file into lines. A trailing newline does not
// produce a final empty line. Carriage returns are stripped so transcripts
// captured through a PTY compare equal to ones captured through a pipe.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(data), "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}
