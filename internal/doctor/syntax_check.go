package doctor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/antika/internal/store"
	"github.com/thoreinstein/antika/internal/workflow"
	"github.com/thoreinstein/antika/pkg/fileutil"
)

// WorkflowSyntaxCheck parses the workflow file and reports records that
// would be skipped at load time.
type WorkflowSyntaxCheck struct {
	path string
}

var _ Check = (*WorkflowSyntaxCheck)(nil)

// NewWorkflowSyntaxCheck creates a syntax check for the workflow file at path.
func NewWorkflowSyntaxCheck(path string) *WorkflowSyntaxCheck {
	return &WorkflowSyntaxCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *WorkflowSyntaxCheck) Name() string {
	return "workflow-syntax"
}

// Category returns the grouping for this check.
func (c *WorkflowSyntaxCheck) Category() string {
	return "store"
}

// recordIssue describes one record that LoadTools would discard.
type recordIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Run executes the syntax validation check.
func (c *WorkflowSyntaxCheck) Run() *Result {
	result := &Result{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	codec, err := store.CodecFor(c.path)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "use a workflow file ending in " + strings.Join(store.SupportedExtensions(), ", ")
		return result
	}
	result.Details["format"] = codec.Name()

	data, err := fileutil.ReadFileWithLimit(c.path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			result.Status = SeverityInfo
			result.Message = "workflow file does not exist (nothing to parse)"
		case errors.Is(err, fileutil.ErrFileTooLarge):
			result.Status = SeverityError
			result.Message = err.Error()
		default:
			result.Status = SeverityError
			result.Message = fmt.Sprintf("read error: %v", err)
		}
		return result
	}

	if msg := syntaxError(c.path, data); msg != "" {
		result.Status = SeverityError
		result.Message = msg
		result.FixHint = "fix the syntax with: antika edit"
		return result
	}

	records, err := codec.Decode(data)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s decode error: %v", codec.Name(), err)
		result.FixHint = "fix the file with: antika edit"
		return result
	}

	var issues []recordIssue
	modes := 0
	seen := make(map[string]bool)
	for _, r := range records {
		tool, err := workflow.NewTool(r.Mode, r.Kind, r.Target)
		if err != nil {
			issues = append(issues, recordIssue{Line: r.Line, Reason: err.Error()})
			continue
		}
		if !seen[tool.Mode] {
			seen[tool.Mode] = true
			modes++
		}
	}

	result.Details["records"] = len(records)
	result.Details["valid"] = len(records) - len(issues)
	result.Details["workflows"] = modes

	switch {
	case len(issues) > 0:
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d record(s) are invalid and will be skipped", len(issues), len(records))
		result.Details["invalid"] = issues
		result.FixHint = "fix or remove the listed records with: antika edit"
	case len(records) == 0:
		result.Status = SeverityWarning
		result.Message = "workflow file defines no tools"
		result.FixHint = "add tools with: antika edit"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d record(s) in %d workflow(s) parsed successfully", len(records), modes)
	}
	return result
}

// syntaxError returns a positioned message for JSON and TOML syntax errors,
// or "" when data parses. Other formats are left to their codec.
func syntaxError(path string, data []byte) string {
	if len(bytes.TrimSpace(data)) == 0 {
		return ""
	}
	var v any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err := json.Unmarshal(data, &v)
		var syn *json.SyntaxError
		var typ *json.UnmarshalTypeError
		switch {
		case err == nil:
		case errors.As(err, &syn):
			line, col := offsetToLineCol(data, int(syn.Offset))
			return fmt.Sprintf("JSON syntax error at line %d, column %d: %v", line, col, syn)
		case errors.As(err, &typ):
			line, col := offsetToLineCol(data, int(typ.Offset))
			return fmt.Sprintf("JSON type error at line %d, column %d: %v", line, col, typ)
		default:
			return fmt.Sprintf("JSON error: %v", err)
		}
	case ".toml":
		err := toml.Unmarshal(data, &v)
		var dec *toml.DecodeError
		switch {
		case err == nil:
		case errors.As(err, &dec):
			line, col := dec.Position()
			return fmt.Sprintf("TOML syntax error at line %d, column %d: %v", line, col, dec)
		default:
			return fmt.Sprintf("TOML error: %v", err)
		}
	}
	return ""
}

// offsetToLineCol maps a byte offset to a 1-based line and column,
// clamping offsets that fall outside data.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	offset = min(max(offset, 0), len(data))
	prefix := data[:offset]
	return 1 + bytes.Count(prefix, []byte{'\n'}), offset - bytes.LastIndexByte(prefix, '\n')
}
