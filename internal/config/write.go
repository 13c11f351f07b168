package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/paths"
	"github.com/thoreinstein/antika/pkg/fileutil"
)

// ErrUnknownKey is returned when setting a key antika does not define.
var ErrUnknownKey = errors.New("unknown config key")

// configFilePerm is the mode config.yaml is written with.
const configFilePerm = 0o600

// Keys returns the settable keys in display order.
func Keys() []string {
	return []string{KeyVersion, KeyWorkflowFile, KeyStrict, KeyHistoryEnabled, KeyHistoryPath}
}

// DefaultPath returns where config.yaml is written when no file was read.
func DefaultPath() string {
	return filepath.Join(configDir(), paths.ConfigFileName+".yaml")
}

// Set parses value for key, validates the resulting config and writes it
// to path. Viper's state is only changed when validation passes.
func Set(path, key, value string) (*Config, error) {
	parsed, err := parseValue(key, value)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	apply(&cfg, key, parsed)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errs[0]
	}
	if err := Save(path, &cfg); err != nil {
		return nil, err
	}
	viper.Set(key, parsed)
	return &cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.WriteYAMLAtomic(path, cfg, configFilePerm); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeyVersion:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s must be an integer", key)
		}
		return n, nil
	case KeyStrict, KeyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.Wrapf(err, "%s must be true or false", key)
		}
		return b, nil
	case KeyWorkflowFile, KeyHistoryPath:
		return value, nil
	default:
		return nil, errors.WithHint(errors.Wrap(ErrUnknownKey, key), "valid keys: "+strings.Join(Keys(), ", "))
	}
}

func apply(cfg *Config, key string, v any) {
	switch key {
	case KeyVersion:
		cfg.Version = v.(int)
	case KeyWorkflowFile:
		cfg.WorkflowFile = v.(string)
	case KeyStrict:
		cfg.Strict = v.(bool)
	case KeyHistoryEnabled:
		cfg.History.Enabled = v.(bool)
	case KeyHistoryPath:
		cfg.History.Path = v.(string)
	}
}
