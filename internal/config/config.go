package config

import (
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/paths"
)

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = "ANTIKA_CONFIG_DIR"

// Viper keys.
const (
	KeyVersion        = "version"
	KeyWorkflowFile   = "workflow_file"
	KeyStrict         = "strict"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryPath    = "history.path"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version      int           `mapstructure:"version" yaml:"version"`
	WorkflowFile string        `mapstructure:"workflow_file" yaml:"workflow_file"`
	Strict       bool          `mapstructure:"strict" yaml:"strict"`
	History      HistoryConfig `mapstructure:"history" yaml:"history"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Init initializes Viper with default configuration.
// Any previously loaded state is discarded.
func Init() {
	viper.Reset()

	viper.SetConfigName(paths.ConfigFileName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(configDir())

	// ANTIKA_WORKFLOW_FILE, ANTIKA_HISTORY_ENABLED, ...
	viper.SetEnvPrefix("ANTIKA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeyWorkflowFile, paths.DefaultWorkflowFile())
	viper.SetDefault(KeyStrict, false)
	viper.SetDefault(KeyHistoryEnabled, true)
	viper.SetDefault(KeyHistoryPath, paths.DefaultHistoryFile())
}

func configDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return paths.AppConfigDir()
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default locations and falls back to
// defaults when no file exists. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load: defaults apply
		case errors.Is(err, fs.ErrNotExist), errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	var err error
	if cfg.WorkflowFile, err = paths.ExpandHome(cfg.WorkflowFile); err != nil {
		return nil, errors.Wrap(err, "expanding workflow_file")
	}
	if cfg.History.Path, err = paths.ExpandHome(cfg.History.Path); err != nil {
		return nil, errors.Wrap(err, "expanding history.path")
	}

	return &cfg, nil
}
