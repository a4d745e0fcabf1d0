// Package fixture manages the deterministic directory tree that du tests
// measure. The tree is owned by exactly one test at a time: Setup acquires
// a file lock and rebuilds the tree from scratch, Teardown removes it and
// releases the lock. Callers defer Teardown so a failing comparison never
// leaks fixture state into the next test.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// File sizes are asserted by golden transcripts; changing them breaks the
// du expected outputs.
const (
	sizeA = 500
	sizeB = 2500
	sizeC = 300
)

// Fixture is one scoped acquisition of the du test tree.
type Fixture struct {
	dir  string
	lock *flock.Flock
}

// Setup builds the du tree at dir, replacing any leftover from an earlier
// crashed run. The returned Fixture must be released with Teardown.
func Setup(dir string) (*Fixture, error) {
	lock := flock.New(dir + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock fixture %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("fixture %s is held by another harness run", dir)
	}

	f := &Fixture{dir: dir, lock: lock}
	if err := f.build(); err != nil {
		f.Teardown()
		return nil, err
	}
	return f, nil
}

func (f *Fixture) build() error {
	if err := os.RemoveAll(f.dir); err != nil {
		return fmt.Errorf("clear fixture %s: %w", f.dir, err)
	}
	if err := os.MkdirAll(filepath.Join(f.dir, "sub"), 0o755); err != nil {
		return fmt.Errorf("create fixture %s: %w", f.dir, err)
	}

	files := []struct {
		path string
		fill byte
		size int
	}{
		{filepath.Join(f.dir, "a"), 'A', sizeA},
		{filepath.Join(f.dir, "b"), 'B', sizeB},
		{filepath.Join(f.dir, "sub", "c"), 'C', sizeC},
	}
	for _, fl := range files {
		data := make([]byte, fl.size)
		for i := range data {
			data[i] = fl.fill
		}
		if err := os.WriteFile(fl.path, data, 0o644); err != nil {
			return fmt.Errorf("write fixture file %s: %w", fl.path, err)
		}
	}
	return nil
}

// Dir returns the fixture directory path.
func (f *Fixture) Dir() string {
	return f.dir
}

// Teardown removes the tree and releases the lock. Safe to call more than
// once; errors are returned but the lock is always released.
func (f *Fixture) Teardown() error {
	rmErr := os.RemoveAll(f.dir)
	if f.lock != nil {
		_ = f.lock.Unlock()
		_ = os.Remove(f.lock.Path())
		f.lock = nil
	}
	if rmErr != nil {
		return fmt.Errorf("remove fixture %s: %w", f.dir, rmErr)
	}
	return nil
}
