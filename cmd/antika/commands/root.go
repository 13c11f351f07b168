// Package commands implements the CLI commands for antika.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/antika/cmd"
	"github.com/thoreinstein/antika/internal/config"
	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/store"
)

// workflowFile holds the value of the --file flag.
var workflowFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// appConfig is the configuration loaded in initConfig.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&workflowFile, "file", "f", "",
		"workflow file (.csv, .yaml, .json or .toml; default from config)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Current().Version
	rootCmd.SetVersionTemplate("antika version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// --file overrides workflow_file from config and environment
	_ = viper.BindPFlag(config.KeyWorkflowFile, rootCmd.PersistentFlags().Lookup("file"))
	appConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "antika",
	Short: "Open the applications and websites of a workflow in one go",
	Long: `antika opens a predefined set of desktop applications and websites
for a named workflow ("mode"), such as work, study or music.

Workflows are kept in a single file (CSV by default; YAML, JSON and TOML
are also supported). Each record names a mode, a kind (APP or WEB) and a
target: an executable path or a URL.`,
	Example: `  # Create the workflow file with example entries
  antika init

  # Show the available workflows
  antika list

  # Open everything in the "work" workflow
  antika run work

  # Pick a workflow interactively
  antika run

See Also: antika edit, antika doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("ANTIKA_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "use text or json")
	}
	cfg := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		cfg.Mirror = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load errors for every command except help
// and version. Doctor reports them itself, and config path/edit must work
// on a broken file.
func checkConfig(cmd *cobra.Command) error {
	switch cmd {
	case configPathCmd, configEditCmd:
		return nil
	}
	switch cmd.Name() {
	case "help", "version", "doctor":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// currentConfig returns the loaded config, or the defaults when initConfig
// has not run (e.g., commands invoked directly from tests).
func currentConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	cfg, err := config.Load("")
	if err != nil {
		return &config.Config{Version: config.CurrentVersion}
	}
	return cfg
}

// openStore opens the workflow file selected by --file or config.
func openStore(ctx context.Context) (*store.FileStore, error) {
	path := workflowFile
	if path == "" {
		path = currentConfig().WorkflowFile
	}
	s, err := store.NewWithLogger(path, logging.FromContext(ctx))
	if err != nil {
		return nil, errors.NewUserError(err, "use a workflow file ending in .csv, .yaml, .yml, .json or .toml")
	}
	return s, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ErrorMessage renders err for the one-line "Error:" diagnostic. It is empty
// for exit errors without a cause, whose command already reported them.
func ErrorMessage(err error) string {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return ""
	}
	return err.Error()
}
