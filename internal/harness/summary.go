package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// RunSummary aggregates one run's results. It is persisted next to the
// captured outputs so a run can be inspected after the console scrolls by.
type RunSummary struct {
	RunID     string       `json:"run_id"`
	Timestamp time.Time    `json:"timestamp"`
	Total     int          `json:"total"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Faulted   int          `json:"faulted"`
	Results   []TestResult `json:"results"`
}

// Summarize computes run totals from per-test results.
func Summarize(results []TestResult) *RunSummary {
	s := &RunSummary{
		RunID:     uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Total:     len(results),
		Results:   results,
	}
	for _, r := range results {
		switch r.Outcome {
		case Pass:
			s.Passed++
		case Fail:
			s.Failed++
		case Skipped:
			s.Skipped++
		case Fault:
			s.Faulted++
		}
	}
	return s
}

// Save writes the summary as summary.json under dir.
func (s *RunSummary) Save(dir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	path := filepath.Join(dir, "summary.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
