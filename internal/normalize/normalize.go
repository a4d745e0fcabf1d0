// Package normalize canonicalizes shell output lines so transcripts can be
// compared across runs. Process IDs embedded in job-control and signal
// messages change on every run; each masking rule replaces one known PID
// position with a fixed placeholder. Rules are an explicit ordered list and
// the first matching rule wins.
package normalize

import (
	"regexp"
	"strings"
)

// Placeholder replaces masked process IDs in normalized output.
const Placeholder = "<PID>"

// PromptMarkers are the prompts the shell prints before reading input.
// Longer markers come first so the shorter one never shadows them.
var PromptMarkers = []string{"smash> ", "smash>"}

// signalMessagePrefix starts the message smash prints when a foreground
// process is killed by a signal.
const signalMessagePrefix = "smash: process "

// pidPattern matches a whole token of 2 to 6 ASCII digits. Anchored so a
// digit run embedded in a longer token never matches.
var pidPattern = regexp.MustCompile(`^[0-9]{2,6}$`)

// A Rule is one masking step: Apply returns the transformed line and
// whether the rule matched. Rules never match partially; a non-matching
// rule returns its input unchanged.
type Rule struct {
	Name  string
	Apply func(line string) (string, bool)
}

// Rules is the masking rule list in application order. StripPrompt runs
// before these; of the rules below only the first match is applied.
var Rules = []Rule{
	{Name: "trailing-pid", Apply: maskTrailingPID},
	{Name: "pid-colon-message", Apply: maskPIDColonMessage},
	{Name: "signal-message", Apply: maskSignalMessage},
}

// StripPrompt removes one leading prompt marker, if present.
func StripPrompt(line string) string {
	for _, marker := range PromptMarkers {
		if strings.HasPrefix(line, marker) {
			return line[len(marker):]
		}
	}
	return line
}

// maskTrailingPID masks the last whitespace token when it is a PID and at
// least one other token precedes it. Rejoining with single spaces collapses
// repeated whitespace; that canonicalization is intended.
func maskTrailingPID(line string) (string, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || !pidPattern.MatchString(tokens[len(tokens)-1]) {
		return line, false
	}
	tokens[len(tokens)-1] = Placeholder
	return strings.Join(tokens, " "), true
}

// maskPIDColonMessage masks lines of the form "1234: message".
func maskPIDColonMessage(line string) (string, bool) {
	prefix, rest, found := strings.Cut(line, ": ")
	if !found || !pidPattern.MatchString(prefix) {
		return line, false
	}
	return Placeholder + ": " + rest, true
}

// maskSignalMessage masks the PID in "smash: process 1234 was killed ..."
// notifications. The PID is always the third whitespace token.
func maskSignalMessage(line string) (string, bool) {
	if !strings.HasPrefix(line, signalMessagePrefix) {
		return line, false
	}
	tokens := strings.Fields(line)
	if len(tokens) < 4 || !pidPattern.MatchString(tokens[2]) {
		return line, false
	}
	tokens[2] = Placeholder
	return strings.Join(tokens, " "), true
}

// Line returns the canonical form of one raw output line.
func Line(raw string) string {
	line := StripPrompt(raw)
	for _, rule := range Rules {
		if out, ok := rule.Apply(line); ok {
			return out
		}
	}
	return line
}

// Lines normalizes every line of a transcript.
func Lines(raw []string) []string {
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = Line(l)
	}
	return out
}
