// Package runner executes one session of the shell under test and captures
// its output. PlainRunner pipes a script straight into stdin; Interactive
// drives the shell through a PTY with human-speed pacing and a mid-session
// interrupt to its process group.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// HarnessError marks failures of the harness itself (PTY allocation, spawn
// failure, a hung child) as opposed to a transcript mismatch. Callers use
// errors.As to tell the two apart when reporting.
type HarnessError struct {
	Op  string
	Err error
}

func (e *HarnessError) Error() string {
	return fmt.Sprintf("harness: %s: %v", e.Op, e.Err)
}

func (e *HarnessError) Unwrap() error {
	return e.Err
}

// harnessErr wraps err as a HarnessError unless it already is one.
func harnessErr(op string, err error) error {
	var he *HarnessError
	if errors.As(err, &he) {
		return err
	}
	return &HarnessError{Op: op, Err: err}
}

// PlainRunner runs the shell non-interactively: the whole script is
// available on stdin at once, stdout and stderr are merged, and the run
// ends when the shell exits on EOF or a quit command in the script.
type PlainRunner struct {
	Bin string
	Env []string
}

// Run executes the shell with scriptPath on stdin and writes the merged
// output to outPath. A non-zero exit from the shell is not an error; the
// captured output is still compared so a crashing shell fails its test
// with a readable diff rather than aborting the run.
func (r *PlainRunner) Run(ctx context.Context, scriptPath, outPath string) error {
	in, err := os.Open(scriptPath)
	if err != nil {
		return harnessErr("open script", err)
	}
	defer in.Close()

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Bin)
	cmd.Stdin = in
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	cmd.Env = r.Env

	if err := cmd.Start(); err != nil {
		return harnessErr("start "+r.Bin, err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return harnessErr("wait for "+r.Bin, err)
		}
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return harnessErr("write output", err)
	}
	return nil
}

// readScript loads an input script as lines, without trailing newlines.
func readScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r", "")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
