package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/workflow"
)

func newTestStore(t *testing.T, name string) *FileStore {
	t.Helper()
	s, err := NewWithLogger(filepath.Join(t.TempDir(), name), logging.ForTest(t))
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, s *FileStore, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	tests := []struct {
		path       string
		wantFormat string
		wantErr    error
	}{
		{"workflow.csv", "csv", nil},
		{"WORKFLOW.CSV", "csv", nil},
		{"workflows.yaml", "yaml", nil},
		{"workflows.yml", "yaml", nil},
		{"workflows.json", "json", nil},
		{"workflows.toml", "toml", nil},
		{"workflows.ini", "", ErrUnsupportedFormat},
		{"workflows", "", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, err := New(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, s.Format())
			assert.Equal(t, tt.path, s.Path())
		})
	}

	_, err := New("  ")
	assert.Error(t, err)
}

func TestCreateDefault_RoundTrip(t *testing.T) {
	for _, name := range []string{"workflow.csv", "workflows.yaml", "workflows.json", "workflows.toml"} {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, name)

			require.NoError(t, s.CreateDefault())

			tools, err := s.LoadTools()
			require.NoError(t, err)
			if diff := cmp.Diff(DefaultTools(), tools); diff != "" {
				t.Errorf("LoadTools() after CreateDefault() mismatch (-want +got):\n%s", diff)
			}

			var apps, webs int
			for _, tool := range tools {
				switch tool.Kind {
				case workflow.KindApplication:
					apps++
				case workflow.KindWebsite:
					webs++
				}
			}
			assert.Equal(t, 1, apps, "bootstrap must contain exactly one application")
			assert.Equal(t, 1, webs, "bootstrap must contain exactly one website")
		})
	}
}

func TestCreateDefault_IsCreateOnly(t *testing.T) {
	s := newTestStore(t, "workflow.csv")

	require.NoError(t, s.CreateDefault())
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	err = s.CreateDefault()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists), "got %v", err)
	assert.False(t, errors.Is(err, ErrStorage))

	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "second CreateDefault must not modify the file")
}

func TestCreateDefault_DoesNotOverwriteUserData(t *testing.T) {
	s := newTestStore(t, "workflow.csv")
	writeFile(t, s, "mode,kind,target\nwork,APP,/usr/bin/slack\n")

	err := s.CreateDefault()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	tools, err := s.LoadTools()
	require.NoError(t, err)
	assert.Len(t, tools, 1)
}

func TestCreateDefault_CSVContent(t *testing.T) {
	s := newTestStore(t, "workflow.csv")
	require.NoError(t, s.CreateDefault())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	want := "mode,kind,target\n" +
		"example,APP," + DefaultTools()[0].Target + "\n" +
		"example,WEB,https://www.google.com/\n"
	assert.Equal(t, want, string(data))
}

func TestLoadTools_BootstrapsMissingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config", "antika")
	s, err := NewWithLogger(filepath.Join(dir, "workflow.csv"), logging.ForTest(t))
	require.NoError(t, err)

	tools, err := s.LoadTools()
	require.NoError(t, err)
	assert.Equal(t, DefaultTools(), tools)

	_, err = os.Stat(s.Path())
	assert.NoError(t, err, "placeholder file should have been created")
}

func TestLoadTools_FiltersMalformedRecords(t *testing.T) {
	content := `mode,kind,target
work,APP,/usr/bin/slack
,WEB,https://bad.example.com
work,,/usr/bin/code
work,WEB,
   ,  ,
work,WEB,https://mail.example.com

study,web,https://docs.example.com
study,APP
`
	s := newTestStore(t, "workflow.csv")
	writeFile(t, s, content)

	tools, err := s.LoadTools()
	require.NoError(t, err)

	want := []workflow.Tool{
		{Mode: "work", Kind: workflow.KindApplication, Target: "/usr/bin/slack"},
		{Mode: "work", Kind: workflow.KindWebsite, Target: "https://mail.example.com"},
		{Mode: "study", Kind: workflow.KindWebsite, Target: "https://docs.example.com"},
	}
	if diff := cmp.Diff(want, tools); diff != "" {
		t.Errorf("LoadTools() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTools_SkipsUnknownKind(t *testing.T) {
	s := newTestStore(t, "workflow.csv")
	writeFile(t, s, "mode,kind,target\nwork,SCRIPT,/tmp/run.sh\nwork,APP,/usr/bin/slack\n")

	tools, err := s.LoadTools()
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "/usr/bin/slack", tools[0].Target)
}

func TestLoadTools_WorkScenario(t *testing.T) {
	s := newTestStore(t, "workflow.csv")
	writeFile(t, s, `mode,kind,target
work,APPLICATION,/usr/bin/slack
work,WEBSITE,https://mail.example.com
,WEBSITE,https://bad.example.com
`)

	tools, err := s.LoadTools()
	require.NoError(t, err)
	assert.Len(t, tools, 2)

	wf, err := workflow.Resolve(tools, "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/slack"}, wf.Applications())
	assert.Equal(t, []string{"https://mail.example.com"}, wf.Websites())
}

func TestLoadTools_HeaderVariants(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"upper case legacy header", "MODE,TYPE,PATH\nwork,APP,/usr/bin/slack\n"},
		{"reordered columns", "target,mode,kind\n/usr/bin/slack,work,APP\n"},
		{"byte order mark and blank lines", "\ufeffmode,kind,target\n\nwork,APP,/usr/bin/slack\n"},
		{"spaces after commas", "mode, kind, target\nwork, APP, /usr/bin/slack\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, "workflow.csv")
			writeFile(t, s, tt.content)

			tools, err := s.LoadTools()
			require.NoError(t, err)
			assert.Equal(t, []workflow.Tool{
				{Mode: "work", Kind: workflow.KindApplication, Target: "/usr/bin/slack"},
			}, tools)
		})
	}
}

func TestLoadTools_HashPrefixedMode(t *testing.T) {
	s := newTestStore(t, "workflow.csv")
	writeFile(t, s, "mode,kind,target\n#dev,APP,/usr/bin/a\nwork,APP,/usr/bin/b\n# notes,WEB,https://notes.example.com\n")

	tools, err := s.LoadTools()
	require.NoError(t, err)
	assert.Equal(t, []workflow.Tool{
		{Mode: "#dev", Kind: workflow.KindApplication, Target: "/usr/bin/a"},
		{Mode: "work", Kind: workflow.KindApplication, Target: "/usr/bin/b"},
		{Mode: "# notes", Kind: workflow.KindWebsite, Target: "https://notes.example.com"},
	}, tools)
}

func TestLoadTools_EmptyFile(t *testing.T) {
	s := newTestStore(t, "workflow.csv")
	writeFile(t, s, "")

	tools, err := s.LoadTools()
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestLoadTools_StorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"missing columns", "workflow.csv", "mode,kind\nwork,APP\n"},
		{"broken quoting", "workflow.csv", "mode,kind,target\nwork,APP,\"/usr/bin/sla\"ck\n"},
		{"invalid yaml", "workflows.yaml", "workflows: [\n"},
		{"invalid json", "workflows.json", "{\"workflows\": "},
		{"invalid toml", "workflows.toml", "[[workflows]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, tt.file)
			writeFile(t, s, tt.content)

			tools, err := s.LoadTools()
			require.Error(t, err)
			assert.Nil(t, tools, "a failed load must not return a tool list")
			assert.True(t, errors.Is(err, ErrStorage), "got %v", err)
		})
	}
}

func TestLoadTools_UnreadablePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	s, err := New(path)
	require.NoError(t, err)

	_, err = s.LoadTools()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage), "got %v", err)
}

func TestCreateDefault_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	s, err := New(filepath.Join(dir, "workflow.csv"))
	require.NoError(t, err)

	err = s.CreateDefault()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorage), "got %v", err)
}
