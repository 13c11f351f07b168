package doctor

import (
	"fmt"
	"os"
	"slices"

	"github.com/thoreinstein/antika/internal/errors"
)

// Fixer is implemented by checks that can repair what they find.
// Both methods act on the findings of the most recent Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one repair.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// pathKind tells file and directory findings apart; each has its own
// target mode.
type pathKind int

const (
	pathFile pathKind = iota
	pathDir
)

func (k pathKind) String() string {
	if k == pathDir {
		return "directory"
	}
	return "file"
}

// securePerm is the mode a repair sets: rw-r--r-- for the workflow file and
// rwxr-xr-x for its directory.
func (k pathKind) securePerm() os.FileMode {
	if k == pathDir {
		return 0o755
	}
	return 0o644
}

// permissionRepair holds the fixable findings of the last Run and chmods
// them on Fix.
type permissionRepair struct {
	pending []pathIssue
}

func (p *permissionRepair) remember(issues []pathIssue) {
	p.pending = slices.DeleteFunc(slices.Clone(issues), func(i pathIssue) bool { return !i.Fixable })
}

// CanFix reports whether the last Run found a fixable problem.
func (p *permissionRepair) CanFix() bool {
	return len(p.pending) > 0
}

// Fix chmods every fixable path to its secure mode. Repaired paths are
// forgotten; failed ones stay pending.
func (p *permissionRepair) Fix() []FixResult {
	results := make([]FixResult, 0, len(p.pending))
	var failed []pathIssue
	for _, issue := range p.pending {
		perm := issue.Kind.securePerm()
		res := FixResult{Path: issue.Path}
		if err := os.Chmod(issue.Path, perm); err != nil {
			res.Error = errors.Wrapf(err, "chmod %04o %s", perm, issue.Path)
			res.Description = fmt.Sprintf("chmod %04o failed: %v", perm, err)
			failed = append(failed, issue)
		} else {
			res.Fixed = true
			res.Description = fmt.Sprintf("chmod %04o", perm)
		}
		results = append(results, res)
	}
	p.pending = failed
	return results
}
