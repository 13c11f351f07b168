// Package fileutil provides file system helpers shared by the workflow store
// and diagnostics: size-limited reads, create-only writes and atomic
// replacement.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/antika/internal/errors"
)

// ErrFileExists indicates CreateExclusive found a file already at the target path.
var ErrFileExists = errors.New("file already exists")

// CreateExclusive writes data to a new file at path.
// The file is opened with O_EXCL, so an existing file is never truncated or
// replaced; in that case the returned error matches ErrFileExists and
// fs.ErrExist. Missing parent directories are created with 0755.
//
// If writing fails after the file was created, the partial file is removed.
func CreateExclusive(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating parent directory")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Mark(errors.Wrapf(err, "creating %s", path), ErrFileExists)
		}
		return errors.Wrap(err, "creating file")
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrap(err, "writing file")
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.Wrap(err, "closing file")
	}

	return nil
}
