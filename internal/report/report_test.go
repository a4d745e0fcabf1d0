package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"smashtest/internal/transcript"
)

// A bytes.Buffer is not a terminal, so all output below is plain ASCII.

func TestPass(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Pass("basic.txt")
	if got := buf.String(); got != "PASS: basic.txt\n" {
		t.Errorf("Pass output = %q", got)
	}
}

func TestFail_MismatchDetail(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Fail("diff.txt", []transcript.Mismatch{
		{Line: 3, Actual: "got this", Expected: "wanted that"},
	})

	out := buf.String()
	for _, want := range []string{
		"FAIL: diff.txt",
		"Line 3:",
		"your:     'got this'",
		"expected: 'wanted that'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Fail output = %q, want it to contain %q", out, want)
		}
	}
}

func TestFail_NoColorOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Fail("x.txt", []transcript.Mismatch{{Line: 1, Actual: "a", Expected: "b"}})
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("output to non-terminal contains ANSI escapes: %q", buf.String())
	}
}

func TestRunningAndSkip(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Running("basic.txt")
	r.Skip("basic.txt", "test input not found")

	out := buf.String()
	if !strings.Contains(out, "Running test: basic.txt") {
		t.Errorf("output = %q, want Running line", out)
	}
	if !strings.Contains(out, "SKIP: basic.txt (test input not found)") {
		t.Errorf("output = %q, want SKIP line with reason", out)
	}
}

func TestFault_DistinctFromFail(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Fault("ctrlc_sleep.txt", errors.New("pty allocation failed"))

	out := buf.String()
	if !strings.Contains(out, "HARNESS ERROR: ctrlc_sleep.txt") {
		t.Errorf("output = %q, want HARNESS ERROR line", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("harness fault rendered as FAIL: %q", out)
	}
}

func TestBuildAndSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.BuildStart()
	r.BuildOK()
	r.Summary(3, 1, 0, 1)

	out := buf.String()
	for _, want := range []string{
		"Compiling smash...",
		"Compilation OK.",
		"3 passed, 1 failed, 0 skipped, 1 harness errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output = %q, want it to contain %q", out, want)
		}
	}
}
