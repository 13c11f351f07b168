package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// WorkflowFileCheck inspects the workflow file and its directory. Whoever
// can write the file chooses what antika executes, so anything writable
// beyond the owner is reported and can be repaired with Fix.
type WorkflowFileCheck struct {
	permissionRepair

	path string
}

var (
	_ Check = (*WorkflowFileCheck)(nil)
	_ Fixer = (*WorkflowFileCheck)(nil)
)

func NewWorkflowFileCheck(path string) *WorkflowFileCheck {
	return &WorkflowFileCheck{path: path}
}

func (c *WorkflowFileCheck) Name() string     { return "workflow-file" }
func (c *WorkflowFileCheck) Category() string { return "store" }

// pathIssue is one finding about the file or its directory.
type pathIssue struct {
	Path     string   `json:"path"`
	Kind     pathKind `json:"type"`
	Problem  string   `json:"problem"`
	Severity Severity `json:"severity"`
	Mode     string   `json:"permissions,omitempty"`
	Fixable  bool     `json:"fixable,omitempty"`
}

func (k pathKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (i pathIssue) hint() string {
	if !i.Fixable {
		return ""
	}
	return fmt.Sprintf("chmod %o %s", i.Kind.securePerm(), i.Path)
}

func (c *WorkflowFileCheck) Run() *Result {
	res := &Result{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		c.remember(nil)
		res.Status = SeverityInfo
		res.Message = "workflow file does not exist yet; it is created on first run"
		res.FixHint = "antika init"
		return res
	}

	issues := append(inspect(filepath.Dir(c.path), pathDir), inspect(c.path, pathFile)...)
	c.remember(issues)

	if len(issues) == 0 {
		res.Status = SeverityPass
		res.Message = "workflow file is readable with safe permissions"
		return res
	}

	var hints []string
	for _, i := range issues {
		res.Status = max(res.Status, i.Severity)
		res.Fixable = res.Fixable || i.Fixable
		if h := i.hint(); h != "" {
			hints = append(hints, h)
		}
	}
	res.Message = fmt.Sprintf("found %d issue(s) with the workflow file", len(issues))
	res.FixHint = strings.Join(hints, "; ")
	res.Details["issue_count"] = len(issues)
	res.Details["issues"] = issues
	return res
}

// inspect reports at most one problem for path. Permission bits are not
// looked at on Windows.
func inspect(path string, kind pathKind) []pathIssue {
	issue := pathIssue{Path: path, Kind: kind, Severity: SeverityError}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		issue.Problem = fmt.Sprintf("cannot stat %s: %v", kind, err)
		return []pathIssue{issue}
	case kind == pathFile && info.IsDir():
		issue.Problem = "expected file but found directory"
		return []pathIssue{issue}
	}
	issue.Mode = fmt.Sprintf("%04o", info.Mode().Perm())

	if kind == pathFile {
		f, err := os.Open(path)
		if err != nil {
			issue.Problem = "file is not readable"
			return []pathIssue{issue}
		}
		f.Close()
	}
	if runtime.GOOS == "windows" {
		return nil
	}

	perm := info.Mode().Perm()
	issue.Severity = SeverityWarning
	issue.Fixable = true
	switch {
	case kind == pathDir:
		// A sticky bit (as on /tmp) stops others from replacing our file.
		if perm&0o002 == 0 || info.Mode()&os.ModeSticky != 0 {
			return nil
		}
		issue.Problem = "directory is world-writable (security risk)"
	case perm&0o002 != 0:
		issue.Problem = "file is world-writable (security risk)"
	case perm&^kind.securePerm() != 0:
		issue.Problem = fmt.Sprintf("file has overly permissive permissions (mode %s, expected %04o or less)", issue.Mode, kind.securePerm())
	default:
		return nil
	}
	return []pathIssue{issue}
}
