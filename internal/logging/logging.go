package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/antika/internal/errors"
)

// Format selects the handler for the primary log stream.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ErrInvalidFormat is returned by ParseFormat.
var ErrInvalidFormat = errors.New("invalid log format")

// ParseFormat accepts "text", "json" or "" (text).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", errors.Wrapf(ErrInvalidFormat, "%q", s)
}

// LevelTrace sits below slog.LevelDebug and is enabled by -vvv.
const LevelTrace = slog.Level(-8)

// Config describes a logger. Output defaults to os.Stderr. When Mirror is
// set, every record is also written to it as JSON, whatever Format says.
type Config struct {
	Level  slog.Level
	Format Format
	Output io.Writer
	Mirror io.Writer
}

// New builds the logger described by cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = NewHandler(out, opts)
	}
	if cfg.Mirror != nil {
		h = NewMultiHandler(h, slog.NewJSONHandler(cfg.Mirror, opts))
	}
	return slog.New(h)
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromVerbosity maps the count of -v flags to a log level.
//
//	0 -> Warn, 1 -> Info, 2 -> Debug, 3+ -> Trace
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// LevelName returns the display name for a level, including TRACE.
func LevelName(level slog.Level) string {
	if level <= LevelTrace {
		return "TRACE"
	}
	return level.String()
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() if none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest logs every level through t.Log, so output shows up only for
// failing tests or under go test -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{Level: LevelTrace, Output: testWriter{t}})
}
