package launch

import (
	"github.com/thoreinstein/antika/internal/workflow"
)

// Status is the outcome of dispatching a single tool.
type Status int

const (
	// StatusLaunched indicates the launch primitive succeeded.
	StatusLaunched Status = iota

	// StatusFailed indicates the launch primitive or validation failed.
	StatusFailed

	// StatusSkipped indicates the tool was not attempted.
	StatusSkipped
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusLaunched:
		return "launched"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText renders the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome for one tool.
type Result struct {
	Tool   workflow.Tool `json:"tool"`
	Status Status        `json:"status"`
	Err    error         `json:"-"`
}

// Error returns the failure message, or "" when the tool did not fail.
func (r Result) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report is the per-item outcome of one OpenWorkflow call.
// Results are ordered applications first, then websites, each in store order.
type Report struct {
	Workflow string   `json:"workflow"`
	Results  []Result `json:"results"`
}

func (r *Report) add(tool workflow.Tool, status Status, err error) {
	r.Results = append(r.Results, Result{Tool: tool, Status: status, Err: err})
}

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Total returns the number of tools in the report.
func (r *Report) Total() int { return len(r.Results) }

// Succeeded returns the number of tools launched.
func (r *Report) Succeeded() int { return r.count(StatusLaunched) }

// Failed returns the number of tools whose launch failed.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped returns the number of tools not attempted.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// AllFailed reports whether the workflow had tools and none of them launched.
func (r *Report) AllFailed() bool {
	return r.Total() > 0 && r.Succeeded() == 0
}

// Failures returns the failed and skipped results in order.
func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status != StatusLaunched {
			out = append(out, res)
		}
	}
	return out
}
