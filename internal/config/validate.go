package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/store"
)

// CurrentVersion is the only supported config schema version.
const CurrentVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidPath        = errors.New("invalid path")
)

// Validate returns every problem found in cfg; an empty result means the
// config is usable. Paths are checked for shape only, never for existence.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error
	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Wrapf(ErrUnsupportedVersion, "%d", cfg.Version))
	}
	for _, f := range []struct {
		field, path string
		workflow    bool
	}{
		{"workflow_file", cfg.WorkflowFile, true},
		{"history.path", cfg.History.Path, false},
	} {
		if err := checkPath(f.path, f.workflow); err != nil {
			errs = append(errs, &PathError{Field: f.field, Path: f.path, Err: err})
		}
	}
	return errs
}

// checkPath accepts "" as "use the default". A workflow path must also
// carry an extension some store codec understands.
func checkPath(path string, workflow bool) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, 0) || filepath.Clean(path) == "." {
		return ErrInvalidPath
	}
	if workflow && !slices.Contains(store.SupportedExtensions(), strings.ToLower(filepath.Ext(path))) {
		return store.ErrUnsupportedFormat
	}
	return nil
}

// PathError ties a path problem to the config key holding the path.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error { return e.Err }
