// Package teststore maps test names to the files that make up a test case:
// the input script, the golden transcript, and the captured result.
package teststore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OutSuffix is appended to the test name for captured and golden files.
const OutSuffix = ".out"

// interactivePrefix marks tests driven through a PTY with an injected
// interrupt. fixtureMarker marks tests that need the deterministic du tree.
const (
	interactivePrefix = "ctrlc"
	fixtureMarker     = "du"
)

// Store resolves test files inside the fixed directory layout.
type Store struct {
	InputDir    string
	OutputDir   string
	ExpectedDir string
}

// New returns a Store over the given directories.
func New(inputDir, outputDir, expectedDir string) *Store {
	return &Store{InputDir: inputDir, OutputDir: outputDir, ExpectedDir: expectedDir}
}

// EnsureDirs creates the output directories if missing. Input and expected
// directories are authored by hand and are not created here.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.OutputDir, s.ExpectedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// List returns the names of all .txt test scripts, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read test dir %s: %w", s.InputDir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// InputPath returns the input script path for a test.
func (s *Store) InputPath(name string) string {
	return filepath.Join(s.InputDir, name)
}

// OutputPath returns where the captured output for a test is written.
func (s *Store) OutputPath(name string) string {
	return filepath.Join(s.OutputDir, name+OutSuffix)
}

// ExpectedPath returns the golden transcript path for a test.
func (s *Store) ExpectedPath(name string) string {
	return filepath.Join(s.ExpectedDir, name+OutSuffix)
}

// HasInput reports whether the test's input script exists.
func (s *Store) HasInput(name string) bool {
	_, err := os.Stat(s.InputPath(name))
	return err == nil
}

// IsInteractive reports whether a test runs under a PTY with an injected
// interrupt, by name convention.
func IsInteractive(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), interactivePrefix)
}

// NeedsFixture reports whether a test depends on the deterministic du
// directory tree, by name convention.
func NeedsFixture(name string) bool {
	return strings.Contains(strings.ToLower(name), fixtureMarker)
}
