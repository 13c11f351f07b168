package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "antika"

// File names used inside the application directories.
const (
	// WorkflowFileName is the default workflow store (CSV reference format).
	WorkflowFileName = "workflow.csv"

	// HistoryFileName is the bbolt database recording dispatch runs.
	HistoryFileName = "history.db"

	// ConfigFileName is the viper config file, without extension.
	ConfigFileName = "config"
)

var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm keeps application directories private to the user.
const DefaultDirPerm = 0o700

// EnsureDir is os.MkdirAll with DefaultDirPerm standing in for a zero perm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating directory %s", path)
}

// ResolveHome fails with ErrHomeDirNotFound in its chain.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome and DataHome follow the platform rules of adrg/xdg, so they
// honor XDG_CONFIG_HOME and XDG_DATA_HOME wherever those are set.
func ConfigHome() string { return xdg.ConfigHome }

func DataHome() string { return xdg.DataHome }

// AppConfigDir returns <ConfigHome>/antika.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultWorkflowFile returns <ConfigHome>/antika/workflow.csv.
func DefaultWorkflowFile() string {
	return filepath.Join(AppConfigDir(), WorkflowFileName)
}

// DefaultHistoryFile returns <DataHome>/antika/history.db.
func DefaultHistoryFile() string {
	return filepath.Join(DataHome(), AppName, HistoryFileName)
}

// ExpandHome replaces a leading "~" or "~/" in path with the home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !hasTildeSlash(path) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func hasTildeSlash(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
