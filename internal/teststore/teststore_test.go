package teststore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	s := New(
		filepath.Join(base, "inputs"),
		filepath.Join(base, "outputs", "output"),
		filepath.Join(base, "outputs", "expected"),
	)
	if err := os.MkdirAll(s.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestList_SortedTxtOnly(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"zeta.txt", "alpha.txt", "notes.md", "mid.txt"} {
		if err := os.WriteFile(filepath.Join(s.InputDir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(s.InputDir, "subdir.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"alpha.txt", "mid.txt", "zeta.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestPaths(t *testing.T) {
	s := New("inputs", "outputs/output", "outputs/expected")

	if got := s.InputPath("t1.txt"); got != filepath.Join("inputs", "t1.txt") {
		t.Errorf("InputPath = %q", got)
	}
	if got := s.OutputPath("t1.txt"); got != filepath.Join("outputs/output", "t1.txt.out") {
		t.Errorf("OutputPath = %q", got)
	}
	if got := s.ExpectedPath("t1.txt"); got != filepath.Join("outputs/expected", "t1.txt.out") {
		t.Errorf("ExpectedPath = %q", got)
	}
}

func TestHasInput(t *testing.T) {
	s := newTestStore(t)
	if s.HasInput("ghost.txt") {
		t.Error("HasInput(ghost.txt) = true, want false")
	}
	if err := os.WriteFile(s.InputPath("real.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !s.HasInput("real.txt") {
		t.Error("HasInput(real.txt) = false, want true")
	}
}

func TestEnsureDirs(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error: %v", err)
	}
	for _, dir := range []string{s.OutputDir, s.ExpectedDir} {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			t.Errorf("EnsureDirs() did not create %s", dir)
		}
	}
}

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"ctrlc_sleep.txt", true},
		{"CtrlC_fg.txt", true},
		{"CTRLCjobs.txt", true},
		{"basic.txt", false},
		{"my_ctrlc.txt", false},
	}
	for _, tt := range tests {
		if got := IsInteractive(tt.name); got != tt.want {
			t.Errorf("IsInteractive(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNeedsFixture(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"du_basic.txt", true},
		{"test_DU_sub.txt", true},
		{"redundant.txt", true}, // substring match is intentional
		{"basic.txt", false},
	}
	for _, tt := range tests {
		if got := NeedsFixture(tt.name); got != tt.want {
			t.Errorf("NeedsFixture(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
