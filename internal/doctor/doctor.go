package doctor

import (
	"fmt"
	"time"
)

// Check is one diagnostic.
type Check interface {
	// Name identifies the check, e.g. "workflow-syntax".
	Name() string

	// Category groups checks in output: "config", "store", "workflow" or "system".
	Category() string

	Run() *Result
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a Runner with the given checks.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks, now: time.Now}
}

// AddCheck appends c to the checks to run.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check and summarizes the results. A check that panics
// or returns nil is reported as an error instead of aborting the run.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*Result, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		res := runCheck(c)
		report.Results = append(report.Results, res)
		report.Summary.add(res.Status)
	}
	return report
}

func runCheck(c Check) (res *Result) {
	defer func() {
		if p := recover(); p != nil {
			res = &Result{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityError,
				Message:  fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()

	res = c.Run()
	if res == nil {
		res = &Result{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "check returned no result",
		}
	}
	return res
}

// Fix applies the repairs of every Fixer check that found fixable
// problems. Call it after Run, and Run again to see the new state.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, c := range r.checks {
		if f, ok := c.(Fixer); ok && f.CanFix() {
			results = append(results, f.Fix()...)
		}
	}
	return results
}

// Report is the outcome of one Runner.Run.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Results   []*Result `json:"results"`
	Summary   Summary   `json:"summary"`
}

// HasErrors reports whether any check failed with SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check returned SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Worst returns the most severe status in the report.
func (r *Report) Worst() Severity {
	worst := SeverityPass
	for _, res := range r.Results {
		worst = max(worst, res.Status)
	}
	return worst
}
