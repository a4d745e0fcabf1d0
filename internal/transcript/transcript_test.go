package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCompare_Identical(t *testing.T) {
	seqs := [][]string{
		nil,
		{},
		{"one"},
		{"one", "two", "three"},
		{"", "", ""},
	}
	for _, seq := range seqs {
		if got := Compare(seq, seq); len(got) != 0 {
			t.Errorf("Compare(%q, same) = %v, want empty", seq, got)
		}
	}
}

func TestCompare_Mismatch(t *testing.T) {
	got := Compare([]string{"a", "b", "c"}, []string{"a", "x", "c"})
	if len(got) != 1 {
		t.Fatalf("Compare() returned %d mismatches, want 1", len(got))
	}
	m := got[0]
	if m.Line != 2 || m.Actual != "b" || m.Expected != "x" {
		t.Errorf("mismatch = %+v, want line 2 actual b expected x", m)
	}
}

func TestCompare_LengthMismatch(t *testing.T) {
	got := Compare([]string{"a"}, []string{"a", "b", "c"})
	if len(got) != 2 {
		t.Fatalf("Compare() returned %d mismatches, want 2", len(got))
	}
	for i, m := range got {
		if m.Line != i+2 {
			t.Errorf("mismatch %d line = %d, want %d", i, m.Line, i+2)
		}
		if m.Actual != "" {
			t.Errorf("mismatch %d actual = %q, want empty (missing side)", i, m.Actual)
		}
	}
	if got[0].Expected != "b" || got[1].Expected != "c" {
		t.Errorf("expected sides = %q, %q, want b, c", got[0].Expected, got[1].Expected)
	}
}

func TestCompare_InsertionCascades(t *testing.T) {
	// Positional by design: an inserted line mismatches everything after it.
	got := Compare([]string{"x", "a", "b"}, []string{"a", "b"})
	if len(got) != 3 {
		t.Errorf("Compare() returned %d mismatches, want 3 (cascade)", len(got))
	}
}

func TestCompare_Symmetric(t *testing.T) {
	a := []string{"one", "two", "three"}
	b := []string{"one", "2", "three", "four"}

	ab := Compare(a, b)
	ba := Compare(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("mismatch counts differ: %d vs %d", len(ab), len(ba))
	}
	for i := range ab {
		if ab[i].Line != ba[i].Line {
			t.Errorf("mismatch %d lines differ: %d vs %d", i, ab[i].Line, ba[i].Line)
		}
		if ab[i].Actual != ba[i].Expected || ab[i].Expected != ba[i].Actual {
			t.Errorf("mismatch %d not a swap: %+v vs %+v", i, ab[i], ba[i])
		}
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(path, []byte("one\r\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("ReadLines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadLines_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadLines(empty file) = %q, want no lines", got)
	}
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("ReadLines(missing) returned nil error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadLines(missing) error = %v, want not-exist", err)
	}
}
