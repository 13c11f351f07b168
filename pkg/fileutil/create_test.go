package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/antika/internal/errors"
)

func TestCreateExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "workflow.csv")

	require.NoError(t, CreateExclusive(path, []byte("first\n"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestCreateExclusive_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.csv")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	err := CreateExclusive(path, []byte("replacement"), 0o644)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileExists), "expected ErrFileExists, got %v", err)
	assert.True(t, errors.Is(err, fs.ErrExist), "expected fs.ErrExist, got %v", err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got), "existing file must not be modified")
}
