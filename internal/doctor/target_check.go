package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/thoreinstein/antika/internal/launch"
	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/store"
	"github.com/thoreinstein/antika/internal/workflow"
)

// loadTools reads the valid tools from the workflow file at path without
// bootstrapping a missing file.
func loadTools(path string) ([]workflow.Tool, error) {
	fs, err := store.New(path)
	if err != nil {
		return nil, err
	}
	records, err := fs.ReadRecords()
	if err != nil {
		return nil, err
	}
	tools := make([]workflow.Tool, 0, len(records))
	for _, r := range records {
		if tool, err := workflow.NewTool(r.Mode, r.Kind, r.Target); err == nil {
			tools = append(tools, tool)
		}
	}
	return tools, nil
}

// targetIssue describes one tool whose target will not launch.
type targetIssue struct {
	Mode    string `json:"mode"`
	Target  string `json:"target"`
	Problem string `json:"problem"`
}

// ApplicationTargetCheck verifies that every application target resolves
// to an executable.
type ApplicationTargetCheck struct {
	path     string
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

var _ Check = (*ApplicationTargetCheck)(nil)

// NewApplicationTargetCheck creates a target check for the workflow file at path.
func NewApplicationTargetCheck(path string) *ApplicationTargetCheck {
	return &ApplicationTargetCheck{
		path:     path,
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		stat:     os.Stat,
	}
}

// Name returns the unique identifier for this check.
func (c *ApplicationTargetCheck) Name() string {
	return "application-targets"
}

// Category returns the grouping for this check.
func (c *ApplicationTargetCheck) Category() string {
	return "workflow"
}

// Run resolves each application target the way SystemLauncher would.
func (c *ApplicationTargetCheck) Run() *Result {
	result := &Result{
		Name:     c.Name(),
		Category: c.Category(),
	}

	tools, err := loadTools(c.path)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: workflow file could not be read"
		return result
	}

	var issues []targetIssue
	checked := 0
	for _, tool := range tools {
		if tool.Kind != workflow.KindApplication {
			continue
		}
		checked++
		if problem := c.problem(tool.Target); problem != "" {
			issues = append(issues, targetIssue{Mode: tool.Mode, Target: tool.Target, Problem: problem})
		}
	}

	result.Details = map[string]any{"checked": checked}
	switch {
	case checked == 0:
		result.Status = SeverityInfo
		result.Message = "no applications defined"
	case len(issues) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d application(s) cannot be started", len(issues), checked)
		result.Details["issues"] = issues
		result.FixHint = "install the missing applications or correct their paths with: antika edit"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("all %d application(s) found", checked)
	}
	return result
}

// problem returns why target cannot be started, or "" if it can.
func (c *ApplicationTargetCheck) problem(target string) string {
	expanded, err := launch.ExpandTarget(target, c.getenv)
	if err != nil {
		return err.Error()
	}

	// Bare names are resolved through PATH, like exec.Command does.
	if !strings.ContainsAny(expanded, `/\`) {
		if _, err := c.lookPath(expanded); err != nil {
			return "not found on PATH"
		}
		return ""
	}

	info, err := c.stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return "file does not exist"
		}
		return err.Error()
	}
	if info.IsDir() {
		if c.goos == "darwin" && strings.HasSuffix(strings.TrimSuffix(expanded, "/"), ".app") {
			return ""
		}
		return "is a directory"
	}
	if c.goos != "windows" && info.Mode().Perm()&0o111 == 0 {
		return "is not executable"
	}
	return ""
}

// WebsiteURLCheck verifies that every website target is an absolute URL.
type WebsiteURLCheck struct {
	path string
}

var _ Check = (*WebsiteURLCheck)(nil)

// NewWebsiteURLCheck creates a URL check for the workflow file at path.
func NewWebsiteURLCheck(path string) *WebsiteURLCheck {
	return &WebsiteURLCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *WebsiteURLCheck) Name() string {
	return "website-urls"
}

// Category returns the grouping for this check.
func (c *WebsiteURLCheck) Category() string {
	return "workflow"
}

// Run validates each website target.
func (c *WebsiteURLCheck) Run() *Result {
	result := &Result{
		Name:     c.Name(),
		Category: c.Category(),
	}

	tools, err := loadTools(c.path)
	if err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: workflow file could not be read"
		return result
	}

	var issues []targetIssue
	checked := 0
	for _, tool := range tools {
		if tool.Kind != workflow.KindWebsite {
			continue
		}
		checked++
		if err := launch.ValidateURL(tool.Target); err != nil {
			issues = append(issues, targetIssue{
				Mode:    tool.Mode,
				Target:  logging.MaskURL(tool.Target),
				Problem: err.Error(),
			})
		}
	}

	result.Details = map[string]any{"checked": checked}
	switch {
	case checked == 0:
		result.Status = SeverityInfo
		result.Message = "no websites defined"
	case len(issues) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d website(s) have invalid URLs", len(issues), checked)
		result.Details["issues"] = issues
		result.FixHint = "use absolute URLs such as https://example.com"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("all %d website URL(s) are valid", checked)
	}
	return result
}

// URLOpenerCheck verifies that websites can be opened on this system.
type URLOpenerCheck struct {
	launcher launch.Launcher
}

var _ Check = (*URLOpenerCheck)(nil)

// NewURLOpenerCheck creates a check of l's URL support.
func NewURLOpenerCheck(l launch.Launcher) *URLOpenerCheck {
	return &URLOpenerCheck{launcher: l}
}

// Name returns the unique identifier for this check.
func (c *URLOpenerCheck) Name() string {
	return "url-opener"
}

// Category returns the grouping for this check.
func (c *URLOpenerCheck) Category() string {
	return "system"
}

// Run reports whether the launcher can open URLs.
func (c *URLOpenerCheck) Run() *Result {
	if c.launcher.CanOpenURL() {
		return &Result{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "a URL opener is available",
		}
	}
	return &Result{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  "no URL opener found; websites will be skipped",
		FixHint:  "install xdg-utils (xdg-open) or set up a default browser",
	}
}
