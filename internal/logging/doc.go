// Package logging provides structured logging for the antika CLI using slog.
//
// The package supports both text and JSON output formats, verbosity-driven
// levels (including a TRACE level below DEBUG), masking of secrets that end
// up in attributes (URL passwords, token query parameters), and helpers for
// carrying a logger through a context.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("opened website", "url", target)
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	d := launch.NewDispatcherWithLogger(l, logging.ForTest(t))
package logging
