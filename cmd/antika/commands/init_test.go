package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/store"
)

func TestInit_CreatesWorkflowFile(t *testing.T) {
	for _, name := range []string{"workflow.csv", "workflow.yaml", "workflow.json", "workflow.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			s, err := store.New(path)
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, runInitWithWriter(&out, s))
			assert.Contains(t, out.String(), "Created "+path)

			tools, err := s.LoadTools()
			require.NoError(t, err)
			assert.Equal(t, store.DefaultTools(), tools)
		})
	}
}

func TestInit_NeverOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.csv")
	require.NoError(t, os.WriteFile(path, []byte("mode,kind,target\nwork,WEB,https://example.com\n"), 0o644))
	s, err := store.New(path)
	require.NoError(t, err)

	err = runInitWithWriter(&bytes.Buffer{}, s)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://example.com")
}

func TestEdit_CreatesAndOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.csv")
	s, err := store.New(path)
	require.NoError(t, err)

	var opened string
	setFlag(t, &openEditor, func(p string) error { opened = p; return nil })

	require.NoError(t, runEditWithStore(s))
	assert.Equal(t, path, opened)
	assert.FileExists(t, path)
}

func TestEdit_EditorFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.csv")
	s, err := store.New(path)
	require.NoError(t, err)

	setFlag(t, &openEditor, func(string) error { return errors.New("no editor found") })

	err = runEditWithStore(s)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}
