// Package report renders harness progress and verdicts to the console.
// Color is used only when talking to a terminal.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"smashtest/internal/transcript"
)

// Reporter writes the per-test and summary lines. All harness console
// output goes through it so tests can capture and assert on it.
type Reporter struct {
	out     io.Writer
	profile termenv.Profile
}

// New returns a Reporter writing to w. Color is enabled only when w is
// os.Stdout or os.Stderr attached to a terminal.
func New(w io.Writer) *Reporter {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		profile = termenv.NewOutput(f).Profile
	}
	return &Reporter{out: w, profile: profile}
}

func (r *Reporter) paint(s string, color termenv.ANSIColor) string {
	return r.profile.String(s).Foreground(r.profile.Convert(color)).String()
}

// Running announces the start of a test.
func (r *Reporter) Running(name string) {
	fmt.Fprintf(r.out, "\n%s\n", r.paint("Running test: "+name, termenv.ANSIBlue))
}

// Pass reports a clean verdict.
func (r *Reporter) Pass(name string) {
	fmt.Fprintf(r.out, "%s: %s\n", r.paint("PASS", termenv.ANSIGreen), name)
}

// Fail reports a mismatch verdict with every differing line, 1-based and
// quoted, actual first.
func (r *Reporter) Fail(name string, mismatches []transcript.Mismatch) {
	fmt.Fprintf(r.out, "%s: %s\n", r.paint("FAIL", termenv.ANSIRed), name)
	for _, m := range mismatches {
		fmt.Fprintf(r.out, "%s\n", r.paint(fmt.Sprintf("Line %d:", m.Line), termenv.ANSIYellow))
		fmt.Fprintf(r.out, "  %s\n", r.paint(fmt.Sprintf("your:     '%s'", m.Actual), termenv.ANSIRed))
		fmt.Fprintf(r.out, "  %s\n", r.paint(fmt.Sprintf("expected: '%s'", m.Expected), termenv.ANSIGreen))
	}
}

// Skip reports a test that could not run, usually a missing input script.
func (r *Reporter) Skip(name, reason string) {
	fmt.Fprintf(r.out, "%s: %s (%s)\n", r.paint("SKIP", termenv.ANSIYellow), name, reason)
}

// Fault reports a harness infrastructure failure. Rendered distinctly from
// FAIL so a broken harness is never mistaken for a broken shell.
func (r *Reporter) Fault(name string, err error) {
	fmt.Fprintf(r.out, "%s: %s: %v\n", r.paint("HARNESS ERROR", termenv.ANSIRed), name, err)
}

// BuildStart announces compilation of the target.
func (r *Reporter) BuildStart() {
	fmt.Fprintf(r.out, "%s\n\n", r.paint("Compiling smash...", termenv.ANSIYellow))
}

// BuildOK announces a successful build.
func (r *Reporter) BuildOK() {
	fmt.Fprintf(r.out, "%s\n", r.paint("Compilation OK.", termenv.ANSIGreen))
}

// BuildFailed announces a failed build; the run stops after this.
func (r *Reporter) BuildFailed(err error) {
	fmt.Fprintf(r.out, "%s\n%v\n", r.paint("Compilation FAILED.", termenv.ANSIRed), err)
}

// Summary prints the run totals.
func (r *Reporter) Summary(passed, failed, skipped, faulted int) {
	fmt.Fprintf(r.out, "\n%d passed, %d failed, %d skipped, %d harness errors\n",
		passed, failed, skipped, faulted)
}
