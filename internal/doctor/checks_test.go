package doctor

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/antika/internal/config"
	"github.com/thoreinstein/antika/internal/launch/mocks"
)

func writeWorkflow(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckIdentity(t *testing.T) {
	tests := []struct {
		check    Check
		name     string
		category string
	}{
		{NewWorkflowFileCheck("w.csv"), "workflow-file", "store"},
		{NewWorkflowSyntaxCheck("w.csv"), "workflow-syntax", "store"},
		{NewApplicationTargetCheck("w.csv"), "application-targets", "workflow"},
		{NewWebsiteURLCheck("w.csv"), "website-urls", "workflow"},
		{NewURLOpenerCheck(nil), "url-opener", "system"},
		{NewConfigCheck(nil, ""), "config", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.check.Name())
			assert.Equal(t, tt.category, tt.check.Category())
		})
	}
}

func TestWorkflowFileCheck(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		c := NewWorkflowFileCheck(filepath.Join(t.TempDir(), "workflow.csv"))
		res := c.Run()
		assert.Equal(t, SeverityInfo, res.Status)
		assert.Equal(t, "antika init", res.FixHint)
		assert.False(t, c.CanFix())
	})

	t.Run("healthy file", func(t *testing.T) {
		path := writeWorkflow(t, "workflow.csv", "mode,kind,target\n")
		res := NewWorkflowFileCheck(path).Run()
		assert.Equal(t, SeverityPass, res.Status, res.Message)
	})

	t.Run("directory instead of file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workflow.csv")
		require.NoError(t, os.Mkdir(path, 0o755))
		res := NewWorkflowFileCheck(path).Run()
		assert.Equal(t, SeverityError, res.Status)
	})

	t.Run("world-writable file is fixable", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("Skipping permission tests on Windows")
		}
		path := writeWorkflow(t, "workflow.csv", "mode,kind,target\n")
		require.NoError(t, os.Chmod(path, 0o666))

		c := NewWorkflowFileCheck(path)
		res := c.Run()
		assert.Equal(t, SeverityWarning, res.Status)
		assert.True(t, res.Fixable)
		assert.Equal(t, "chmod 644 "+path, res.FixHint)
		issues, ok := res.Details["issues"].([]pathIssue)
		require.True(t, ok)
		require.Len(t, issues, 1)
		assert.Equal(t, "0666", issues[0].Mode)
		assert.Equal(t, pathFile, issues[0].Kind)
		require.True(t, c.CanFix())

		fixes := c.Fix()
		require.Len(t, fixes, 1)
		assert.True(t, fixes[0].Fixed)
		assert.Equal(t, SeverityPass, c.Run().Status)
	})

	t.Run("group-writable file", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("Skipping permission tests on Windows")
		}
		path := writeWorkflow(t, "workflow.csv", "mode,kind,target\n")
		require.NoError(t, os.Chmod(path, 0o664))

		res := NewWorkflowFileCheck(path).Run()
		assert.Equal(t, SeverityWarning, res.Status)
		assert.Contains(t, res.Message, "1 issue")
	})
}

func TestWorkflowSyntaxCheck(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		wantStatus  Severity
		wantMessage string
	}{
		{
			name:        "valid csv",
			file:        "w.csv",
			content:     "mode,kind,target\nwork,APP,/usr/bin/slack\nwork,WEB,https://mail.example.com\nstudy,WEB,https://docs.example.com\n",
			wantStatus:  SeverityPass,
			wantMessage: "3 record(s) in 2 workflow(s)",
		},
		{
			name:        "invalid records",
			file:        "w.csv",
			content:     "mode,kind,target\nwork,APP,/usr/bin/slack\n,APP,/bin/x\nwork,GAME,/bin/y\n",
			wantStatus:  SeverityWarning,
			wantMessage: "2 of 3 record(s) are invalid",
		},
		{
			name:        "header only",
			file:        "w.csv",
			content:     "mode,kind,target\n",
			wantStatus:  SeverityWarning,
			wantMessage: "defines no tools",
		},
		{
			name:        "json syntax error",
			file:        "w.json",
			content:     "{\n  \"workflows\": [\n    {\"mode\": \"work\",}\n  ]\n}\n",
			wantStatus:  SeverityError,
			wantMessage: "JSON syntax error at line 3",
		},
		{
			name:        "toml syntax error",
			file:        "w.toml",
			content:     "[[workflows]]\nmode = \"work\"\napps = [\"/bin/a\"\n",
			wantStatus:  SeverityError,
			wantMessage: "TOML syntax error",
		},
		{
			name:        "valid yaml",
			file:        "w.yaml",
			content:     "workflows:\n  - mode: work\n    apps: [/usr/bin/slack]\n    websites: [https://mail.example.com]\n",
			wantStatus:  SeverityPass,
			wantMessage: "2 record(s) in 1 workflow(s)",
		},
		{
			name:        "yaml decode error",
			file:        "w.yaml",
			content:     "workflows: [\n",
			wantStatus:  SeverityError,
			wantMessage: "yaml decode error",
		},
		{
			name:        "unsupported extension",
			file:        "w.ini",
			content:     "",
			wantStatus:  SeverityError,
			wantMessage: "unsupported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeWorkflow(t, tt.file, tt.content)
			res := NewWorkflowSyntaxCheck(path).Run()
			assert.Equal(t, tt.wantStatus, res.Status, res.Message)
			assert.Contains(t, res.Message, tt.wantMessage)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		res := NewWorkflowSyntaxCheck(filepath.Join(t.TempDir(), "w.csv")).Run()
		assert.Equal(t, SeverityInfo, res.Status)
	})

	t.Run("invalid record lines are reported", func(t *testing.T) {
		path := writeWorkflow(t, "w.csv", "mode,kind,target\nwork,APP,/usr/bin/slack\nwork,APP,\n")
		res := NewWorkflowSyntaxCheck(path).Run()
		issues, ok := res.Details["invalid"].([]recordIssue)
		require.True(t, ok)
		require.Len(t, issues, 1)
		assert.Equal(t, 3, issues[0].Line)
	})
}

func TestOffsetToLineCol(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
		{-5, 1, 1},
	}
	for _, tt := range tests {
		line, col := offsetToLineCol(data, tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

type fakeInfo struct {
	mode os.FileMode
}

func (f fakeInfo) Name() string       { return "x" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() os.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() any           { return nil }

func TestApplicationTargetCheck(t *testing.T) {
	path := writeWorkflow(t, "w.csv", strings.Join([]string{
		"mode,kind,target",
		"work,APP,slack",
		"work,APP,missing-tool",
		"work,APP,/opt/code/bin/code",
		"work,APP,/opt/data",
		"work,APP,/opt/readme.txt",
		"work,APP,/gone/app",
		"work,WEB,https://mail.example.com",
		"",
	}, "\n"))

	files := map[string]os.FileInfo{
		"/opt/code/bin/code": fakeInfo{mode: 0o755},
		"/opt/data":          fakeInfo{mode: fs.ModeDir | 0o755},
		"/opt/readme.txt":    fakeInfo{mode: 0o644},
	}

	c := NewApplicationTargetCheck(path)
	c.goos = "linux"
	c.getenv = func(string) string { return "" }
	c.lookPath = func(name string) (string, error) {
		if name == "slack" {
			return "/usr/bin/slack", nil
		}
		return "", exec.ErrNotFound
	}
	c.stat = func(p string) (os.FileInfo, error) {
		if info, ok := files[p]; ok {
			return info, nil
		}
		return nil, fs.ErrNotExist
	}

	res := c.Run()

	assert.Equal(t, SeverityWarning, res.Status)
	assert.Equal(t, 6, res.Details["checked"])
	issues, ok := res.Details["issues"].([]targetIssue)
	require.True(t, ok)

	got := map[string]string{}
	for _, issue := range issues {
		got[issue.Target] = issue.Problem
	}
	assert.Equal(t, map[string]string{
		"missing-tool":    "not found on PATH",
		"/opt/data":       "is a directory",
		"/opt/readme.txt": "is not executable",
		"/gone/app":       "file does not exist",
	}, got)
}

func TestApplicationTargetCheck_MacAppBundle(t *testing.T) {
	path := writeWorkflow(t, "w.csv", "mode,kind,target\nwork,APP,/Applications/Slack.app\n")

	c := NewApplicationTargetCheck(path)
	c.goos = "darwin"
	c.stat = func(string) (os.FileInfo, error) { return fakeInfo{mode: fs.ModeDir | 0o755}, nil }

	assert.Equal(t, SeverityPass, c.Run().Status)
}

func TestApplicationTargetCheck_NoApplications(t *testing.T) {
	path := writeWorkflow(t, "w.csv", "mode,kind,target\nwork,WEB,https://mail.example.com\n")
	assert.Equal(t, SeverityInfo, NewApplicationTargetCheck(path).Run().Status)
}

func TestApplicationTargetCheck_UnreadableFile(t *testing.T) {
	res := NewApplicationTargetCheck(filepath.Join(t.TempDir(), "missing.csv")).Run()
	assert.Equal(t, SeverityInfo, res.Status)
	assert.Contains(t, res.Message, "skipped")
}

func TestWebsiteURLCheck(t *testing.T) {
	t.Run("invalid urls are masked and reported", func(t *testing.T) {
		path := writeWorkflow(t, "w.csv", strings.Join([]string{
			"mode,kind,target",
			"work,WEB,https://mail.example.com",
			"work,WEB,mail.example.com",
			"work,WEB,https://user:hunter22@",
			"",
		}, "\n"))

		res := NewWebsiteURLCheck(path).Run()

		assert.Equal(t, SeverityWarning, res.Status)
		assert.Contains(t, res.Message, "2 of 3")
		issues, ok := res.Details["issues"].([]targetIssue)
		require.True(t, ok)
		require.Len(t, issues, 2)
		assert.Equal(t, "mail.example.com", issues[0].Target)
		assert.NotContains(t, issues[1].Target, "hunter22")
		assert.NotContains(t, issues[1].Problem, "hunter22")
	})

	t.Run("all valid", func(t *testing.T) {
		path := writeWorkflow(t, "w.csv", "mode,kind,target\nwork,WEB,https://mail.example.com\n")
		assert.Equal(t, SeverityPass, NewWebsiteURLCheck(path).Run().Status)
	})

	t.Run("no websites", func(t *testing.T) {
		path := writeWorkflow(t, "w.csv", "mode,kind,target\nwork,APP,/usr/bin/slack\n")
		assert.Equal(t, SeverityInfo, NewWebsiteURLCheck(path).Run().Status)
	})
}

func TestURLOpenerCheck(t *testing.T) {
	available := mocks.NewMockLauncher(t)
	available.EXPECT().CanOpenURL().Return(true).Once()
	assert.Equal(t, SeverityPass, NewURLOpenerCheck(available).Run().Status)

	missing := mocks.NewMockLauncher(t)
	missing.EXPECT().CanOpenURL().Return(false).Once()
	res := NewURLOpenerCheck(missing).Run()
	assert.Equal(t, SeverityWarning, res.Status)
	assert.NotEmpty(t, res.FixHint)
}

func TestConfigCheck(t *testing.T) {
	valid := &config.Config{Version: 1, WorkflowFile: "/tmp/w.csv"}
	res := NewConfigCheck(valid, "").Run()
	assert.Equal(t, SeverityPass, res.Status)
	assert.Equal(t, "defaults", res.Details["source"])

	invalid := &config.Config{Version: 2, WorkflowFile: "/tmp/w.txt"}
	res = NewConfigCheck(invalid, "/home/me/.config/antika/config.yaml").Run()
	assert.Equal(t, SeverityError, res.Status)
	problems, ok := res.Details["problems"].([]string)
	require.True(t, ok)
	assert.Len(t, problems, 2)
	assert.True(t, errors.Is(config.Validate(invalid)[0], config.ErrUnsupportedVersion))
	assert.Contains(t, res.FixHint, "config.yaml")
}

func TestConfigCheck_LoadError(t *testing.T) {
	res := NewConfigCheck(nil, "/etc/antika/config.yaml").
		WithLoadError(errors.New("reading config file: bad yaml")).Run()
	assert.Equal(t, SeverityError, res.Status)
	assert.Contains(t, res.Message, "bad yaml")

	res = NewConfigCheck(nil, "").Run()
	assert.Equal(t, SeverityInfo, res.Status)
}
