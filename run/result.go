package run

import (
	"time"

	"github.com/grovetools/hooks/config"
)

// Status is the outcome of one hook during a dispatch.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// InvocationResult records what happened to one hook, in declaration order.
type InvocationResult struct {
	Hook         *config.Hook  `json:"-"`
	HookID       string        `json:"hook"`
	Repo         string        `json:"repo"`
	Status       Status        `json:"status"`
	ExitCode     int           `json:"exit_code"`
	Output       string        `json:"output,omitempty"`
	Err          error         `json:"-"`
	MatchedFiles []string      `json:"matched_files,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
}

// Results is an ordered sequence of invocation results.
type Results []InvocationResult

// Failed reports whether any hook failed. Skipped hooks never count as
// failures.
func (rs Results) Failed() bool {
	for _, r := range rs {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Counts returns how many hooks passed, failed, and were skipped.
func (rs Results) Counts() (passed, failed, skipped int) {
	for _, r := range rs {
		switch r.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return
}
