package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/antika/internal/config"
	"github.com/thoreinstein/antika/internal/doctor"
	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/launch"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable issues (file permissions)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose workflow and configuration issues",
	Long: `Run diagnostic checks on the antika configuration and workflow file.

Checks the workflow file's permissions and syntax, that every application
target exists and is executable, that every website is an absolute URL,
and that this system can open URLs.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(_ *cobra.Command, _ []string) error {
	path := workflowFile
	if path == "" {
		path = currentConfig().WorkflowFile
	}
	runner := newDoctorRunner(path, appConfig, configLoadErr, viper.ConfigFileUsed(), newLauncher())
	return runDoctorWithWriter(os.Stdout, runner)
}

// newDoctorRunner registers every check against the given workflow file.
func newDoctorRunner(path string, cfg *config.Config, loadErr error, configUsed string, l launch.Launcher) *doctor.Runner {
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(cfg, configUsed).WithLoadError(loadErr))
	runner.AddCheck(doctor.NewWorkflowFileCheck(path))
	runner.AddCheck(doctor.NewWorkflowSyntaxCheck(path))
	runner.AddCheck(doctor.NewApplicationTargetCheck(path))
	runner.AddCheck(doctor.NewWebsiteURLCheck(path))
	runner.AddCheck(doctor.NewURLOpenerCheck(l))
	return runner
}

// runDoctorWithWriter allows injecting a writer and runner for testing.
func runDoctorWithWriter(w io.Writer, runner *doctor.Runner) error {
	report := runner.Run()

	if doctorFix {
		fixes := runner.Fix()
		if len(fixes) > 0 {
			outputFixes(w, fixes)
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func outputFixes(w io.Writer, fixes []doctor.FixResult) {
	if doctorQuiet || doctorJSON {
		return
	}
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s fixed %s: %s\n", styleOK("✓"), f.Path, f.Description)
		} else {
			fmt.Fprintf(w, "%s could not fix %s: %s\n", styleError("✗"), f.Path, f.Description)
		}
	}
	fmt.Fprintln(w)
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	// In normal mode, show only errors and warnings
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)

		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return styleOK("✓")
	case doctor.SeverityInfo:
		return styleMuted("ℹ")
	case doctor.SeverityWarning:
		return styleWarn("⚠")
	case doctor.SeverityError:
		return styleError("✗")
	default:
		return "?"
	}
}
