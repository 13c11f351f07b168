package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultPath(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), DefaultPath())
}

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name:  "strict",
			key:   KeyStrict,
			value: "true",
			check: func(t *testing.T, cfg *Config) { assert.True(t, cfg.Strict) },
		},
		{
			name:  "history disabled",
			key:   KeyHistoryEnabled,
			value: "false",
			check: func(t *testing.T, cfg *Config) { assert.False(t, cfg.History.Enabled) },
		},
		{
			name:  "workflow file",
			key:   KeyWorkflowFile,
			value: "/srv/antika/workflow.yaml",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/antika/workflow.yaml", cfg.WorkflowFile)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			Init()
			path := filepath.Join(dir, "config.yaml")

			cfg, err := Set(path, tt.key, tt.value)
			require.NoError(t, err)
			tt.check(t, cfg)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			var onDisk Config
			require.NoError(t, yaml.Unmarshal(data, &onDisk))
			tt.check(t, &onDisk)

			// the written file loads back cleanly
			Init()
			loaded, err := Load(path)
			require.NoError(t, err)
			tt.check(t, loaded)
		})
	}
}

func TestSet_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"unknown key", "colour", "blue", ErrUnknownKey},
		{"bad bool", KeyStrict, "maybe", nil},
		{"bad int", KeyVersion, "one", nil},
		{"unsupported version", KeyVersion, "9", ErrUnsupportedVersion},
		{"unsupported extension", KeyWorkflowFile, "/tmp/workflow.txt", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			Init()
			path := filepath.Join(dir, "config.yaml")

			_, err := Set(path, tt.key, tt.value)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "nothing written on rejection")
			assert.Equal(t, false, viper.GetBool(KeyStrict))
		})
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Version: 1, WorkflowFile: "/tmp/w.csv", History: HistoryConfig{Enabled: true, Path: "/tmp/h.db"}}

	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workflow_file: /tmp/w.csv")
	assert.Contains(t, string(data), "enabled: true")
}
