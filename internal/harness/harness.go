// Package harness orchestrates a test run: it picks the runner for each
// test by name convention, arranges the du fixture when needed, normalizes
// both transcripts, compares them, and reports verdicts.
package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"smashtest/internal/config"
	"smashtest/internal/fixture"
	"smashtest/internal/normalize"
	"smashtest/internal/report"
	"smashtest/internal/runner"
	"smashtest/internal/teststore"
	"smashtest/internal/transcript"
)

// Outcome classifies one test's result. Fault is a harness infrastructure
// failure, kept distinct from Fail so a broken PTY or a hung child is
// never reported as a transcript mismatch.
type Outcome string

const (
	Pass    Outcome = "pass"
	Fail    Outcome = "fail"
	Skipped Outcome = "skipped"
	Fault   Outcome = "fault"
)

// TestResult is the recorded result of one test.
type TestResult struct {
	Name       string                `json:"name"`
	Outcome    Outcome               `json:"outcome"`
	Mismatches []transcript.Mismatch `json:"mismatches,omitempty"`
	Reason     string                `json:"reason,omitempty"`
	Duration   time.Duration         `json:"duration"`
}

// Harness runs tests sequentially. The function fields default to the real
// runners and fixture; tests swap them for fakes.
type Harness struct {
	Config   *config.Config
	Store    *teststore.Store
	Reporter *report.Reporter

	RunPlain       func(ctx context.Context, scriptPath, outPath string) error
	RunInteractive func(ctx context.Context, scriptPath, outPath string) error
	SetupFixture   func(dir string) (*fixture.Fixture, error)
}

// New wires a Harness with production runners.
func New(cfg *config.Config, rep *report.Reporter) *Harness {
	env := cfg.EnvSlice()
	plain := &runner.PlainRunner{Bin: cfg.Bin, Env: env}
	interactive := runner.NewInteractive(cfg.Bin, env, cfg.Timing)

	return &Harness{
		Config:         cfg,
		Store:          teststore.New(cfg.InputDir, cfg.OutputDir, cfg.ExpectedDir),
		Reporter:       rep,
		RunPlain:       plain.Run,
		RunInteractive: interactive.Run,
		SetupFixture:   fixture.Setup,
	}
}

// RunTest executes one named test and reports its verdict. Errors are
// absorbed into the result: a bad test never stops the rest of the run.
func (h *Harness) RunTest(ctx context.Context, name string) TestResult {
	h.Reporter.Running(name)
	start := time.Now()

	res := h.runTest(ctx, name)
	res.Name = name
	res.Duration = time.Since(start)

	switch res.Outcome {
	case Pass:
		h.Reporter.Pass(name)
	case Fail:
		h.Reporter.Fail(name, res.Mismatches)
	case Skipped:
		h.Reporter.Skip(name, res.Reason)
	case Fault:
		h.Reporter.Fault(name, fmt.Errorf("%s", res.Reason))
	}
	return res
}

func (h *Harness) runTest(ctx context.Context, name string) TestResult {
	if !h.Store.HasInput(name) {
		return TestResult{Outcome: Skipped, Reason: "test input not found"}
	}

	if teststore.NeedsFixture(name) {
		fx, err := h.SetupFixture(h.Config.FixtureDir)
		if err != nil {
			return TestResult{Outcome: Fault, Reason: err.Error()}
		}
		// Unconditional: fixture state must not leak into the next test,
		// whatever the verdict.
		defer fx.Teardown()
	}

	run := h.RunPlain
	if teststore.IsInteractive(name) {
		run = h.RunInteractive
	}
	if err := run(ctx, h.Store.InputPath(name), h.Store.OutputPath(name)); err != nil {
		return TestResult{Outcome: Fault, Reason: err.Error()}
	}

	actual, err := transcript.ReadLines(h.Store.OutputPath(name))
	if err != nil {
		return TestResult{Outcome: Fault, Reason: err.Error()}
	}
	expected, err := transcript.ReadLines(h.Store.ExpectedPath(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return TestResult{Outcome: Fault, Reason: err.Error()}
		}
		// No golden transcript yet: compare against nothing so the diff
		// shows the full actual output.
		expected = nil
	}

	// Both sides go through the same rules; raw output is never compared
	// to a normalized golden transcript or the other way around.
	mismatches := transcript.Compare(normalize.Lines(actual), normalize.Lines(expected))
	if len(mismatches) > 0 {
		return TestResult{Outcome: Fail, Mismatches: mismatches}
	}
	return TestResult{Outcome: Pass}
}

// RunAll executes every test in the store in sorted order. One test's
// failure or fault never aborts the remaining tests.
func (h *Harness) RunAll(ctx context.Context) (*RunSummary, error) {
	if err := h.Store.EnsureDirs(); err != nil {
		return nil, err
	}
	names, err := h.Store.List()
	if err != nil {
		return nil, err
	}

	results := make([]TestResult, 0, len(names))
	for _, name := range names {
		results = append(results, h.RunTest(ctx, name))
	}

	s := Summarize(results)
	h.Reporter.Summary(s.Passed, s.Failed, s.Skipped, s.Faulted)
	if err := s.Save(h.Config.OutputDir); err != nil {
		return s, err
	}
	return s, nil
}
