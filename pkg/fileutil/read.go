package fileutil

import (
	"fmt"
	"io"
	"os"

	"github.com/thoreinstein/antika/internal/errors"
)

// MaxFileSize caps ReadFileWithLimit. Workflow files are hand-edited
// lists; anything larger is not one.
const MaxFileSize int64 = 1 << 20

// ErrFileTooLarge matches every *TooLargeError.
var ErrFileTooLarge = errors.New("file too large")

// TooLargeError reports a file over the read limit. Size is the number of
// bytes seen before giving up, so it may be less than the real size.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.Path, e.Size, e.Limit)
}

func (e *TooLargeError) Is(target error) bool { return target == ErrFileTooLarge }

// ReadFileWithLimit reads path with the MaxFileSize limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadLimited(path, MaxFileSize)
}

// ReadLimited reads path, failing with *TooLargeError when it holds more
// than limit bytes. The *os.PathError of a failed open is kept in the
// chain, so errors.Is(err, fs.ErrNotExist) works on the result.
func ReadLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, &TooLargeError{Path: path, Size: info.Size(), Limit: limit}
	}

	// The file may grow after Stat; read one byte past the limit to notice.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, &TooLargeError{Path: path, Size: int64(len(data)), Limit: limit}
	}
	return data, nil
}
