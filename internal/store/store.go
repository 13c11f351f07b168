package store

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/workflow"
	"github.com/thoreinstein/antika/pkg/fileutil"
)

// Sentinel errors for store operations.
var (
	// ErrStorage indicates the backing file could not be read, written or decoded.
	ErrStorage = errors.New("workflow storage error")

	// ErrAlreadyExists indicates CreateDefault found an existing file.
	ErrAlreadyExists = errors.New("workflow file already exists")

	// ErrUnsupportedFormat indicates the file extension has no codec.
	ErrUnsupportedFormat = errors.New("unsupported workflow file format")
)

// ConfigStore loads the persisted tool collection and bootstraps it.
type ConfigStore interface {
	// LoadTools returns every valid tool in store order, creating the
	// placeholder file first when none exists.
	LoadTools() ([]workflow.Tool, error)

	// CreateDefault writes the placeholder file. It never overwrites.
	CreateDefault() error
}

// filePerm is the permission for a newly bootstrapped workflow file.
const filePerm = 0o644

// FileStore is a ConfigStore backed by one file.
type FileStore struct {
	path   string
	codec  Codec
	logger *slog.Logger
}

var _ ConfigStore = (*FileStore)(nil)

// New creates a FileStore for path using the codec selected by its extension.
func New(path string) (*FileStore, error) {
	return NewWithLogger(path, logging.NewDiscard())
}

// NewWithLogger creates a FileStore that reports skipped records and
// bootstrapping through logger.
func NewWithLogger(path string, logger *slog.Logger) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("workflow file path is required")
	}
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &FileStore{
		path:   path,
		codec:  codec,
		logger: logger.With("path", path),
	}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Format returns the codec name, e.g. "csv".
func (s *FileStore) Format() string {
	return s.codec.Name()
}

// Exists reports whether the backing file is present.
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, storageError(err, "checking workflow file")
}

// LoadTools reads the backing file and returns the valid tools in order.
// A missing file is bootstrapped with CreateDefault and then read back.
func (s *FileStore) LoadTools() ([]workflow.Tool, error) {
	exists, err := s.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		s.logger.Warn("workflow file does not exist, creating placeholder")
		if err := s.CreateDefault(); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return nil, err
		}
	}

	records, err := s.ReadRecords()
	if err != nil {
		return nil, err
	}

	tools := make([]workflow.Tool, 0, len(records))
	for _, r := range records {
		tool, err := workflow.NewTool(r.Mode, r.Kind, r.Target)
		if err != nil {
			level := slog.LevelDebug
			if errors.Is(err, workflow.ErrUnknownKind) {
				level = slog.LevelWarn
			}
			s.logger.Log(context.Background(), level, "skipping record", "line", r.Line, "reason", err.Error())
			continue
		}
		tools = append(tools, tool)
	}

	s.logger.Debug("loaded tools", "format", s.codec.Name(), "records", len(records), "tools", len(tools))
	return tools, nil
}

// ReadRecords decodes the backing file without validating records.
// It does not bootstrap a missing file.
func (s *FileStore) ReadRecords() ([]Record, error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		return nil, storageError(err, "reading workflow file")
	}

	records, err := s.codec.Decode(data)
	if err != nil {
		return nil, storageError(err, "decoding "+s.codec.Name()+" workflow file")
	}
	return records, nil
}

// CreateDefault writes the placeholder file containing DefaultTools.
// It fails with ErrAlreadyExists when the file is present and leaves it untouched.
func (s *FileStore) CreateDefault() error {
	data, err := s.codec.Encode(DefaultTools())
	if err != nil {
		return storageError(err, "encoding placeholder workflows")
	}

	if err := fileutil.CreateExclusive(s.path, data, filePerm); err != nil {
		if errors.Is(err, fileutil.ErrFileExists) {
			return errors.WithHint(errors.Wrapf(ErrAlreadyExists, "%s", s.path),
				"edit the existing file with: antika edit")
		}
		return storageError(err, "creating workflow file")
	}

	s.logger.Info("created workflow file with example entries")
	return nil
}

// storageError wraps err with msg and marks it as ErrStorage.
func storageError(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrStorage)
}

// DefaultTools returns the placeholder entries: one application and one
// website in the "example" workflow.
func DefaultTools() []workflow.Tool {
	return []workflow.Tool{
		{Mode: "example", Kind: workflow.KindApplication, Target: exampleApplication()},
		{Mode: "example", Kind: workflow.KindWebsite, Target: "https://www.google.com/"},
	}
}

func exampleApplication() string {
	switch runtime.GOOS {
	case "windows":
		return "notepad.exe"
	case "darwin":
		return "/System/Applications/TextEdit.app/Contents/MacOS/TextEdit"
	default:
		return "/usr/bin/gedit"
	}
}

// CodecFor returns the codec for path's extension.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	case ".json":
		return JSONCodec{}, nil
	case ".toml":
		return TOMLCodec{}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q (use .csv, .yaml, .yml, .json or .toml)", filepath.Ext(path))
	}
}

// SupportedExtensions lists the extensions CodecFor accepts.
func SupportedExtensions() []string {
	return []string{".csv", ".yaml", ".yml", ".json", ".toml"}
}
