package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/internal/cli/prompt"
	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/history"
	"github.com/thoreinstein/antika/internal/launch"
	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/store"
	"github.com/thoreinstein/antika/internal/workflow"
)

var (
	runStrict bool
	runDryRun bool
)

// newLauncher builds the launcher used by run and doctor.
var newLauncher = func() launch.Launcher { return launch.NewSystemLauncher() }

// pickMode chooses a workflow when run is given none.
var pickMode = pickModeInteractive

func init() {
	runCmd.Flags().BoolVar(&runStrict, "strict", false,
		"exit non-zero if any tool fails to open or is skipped")
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false,
		"show what would be opened without opening anything")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:     "run [workflow]",
	Aliases: []string{"open"},
	Short:   "Open every application and website of a workflow",
	Long: `Open every application and website of a workflow.

The workflow name is matched case-insensitively. Without a name, antika
asks which workflow to open: with a fuzzy finder on a terminal, or with a
numbered prompt otherwise.

Applications are started first, then websites are opened in the default
browser. A tool that fails to open is reported and the rest still open.

Exit codes:
  0 - At least one tool opened (or --dry-run)
  1 - Unknown workflow or invalid input
  2 - Every tool failed, or --strict and any tool failed or was skipped`,
	Example: `  # Open the "work" workflow
  antika run work

  # Choose a workflow interactively
  antika run

  # Show what would open
  antika run study --dry-run

See Also: antika list, antika show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	return runRunWithIO(cmd.Context(), os.Stdout, os.Stderr, s, newLauncher(), args)
}

// runRunWithIO allows injecting output streams, store and launcher for testing.
func runRunWithIO(ctx context.Context, w, errW io.Writer, s store.ConfigStore, l launch.Launcher, args []string) error {
	logger := logging.FromContext(ctx)

	tools, err := s.LoadTools()
	if err != nil {
		return errors.NewSystemError(err, "check the workflow file with: antika doctor")
	}

	var requested string
	if len(args) > 0 {
		requested = args[0]
	} else {
		modes := workflow.SortedModes(tools)
		if len(modes) == 0 {
			return errors.NewUserError(errors.New("no workflows are defined"), "add some with: antika edit")
		}
		requested, err = pickMode(modes, workflowIndex(tools))
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) {
				fmt.Fprintln(errW, "Cancelled")
				return nil
			}
			return errors.NewUserError(err, "run: antika list")
		}
	}

	wf, err := workflow.Resolve(tools, requested)
	if err != nil {
		var nf *workflow.NotFoundError
		if errors.As(err, &nf) {
			writeNumberedModes(errW, nf.SortedKnown())
		}
		return errors.NewUserError(err, "open one of the listed workflows: antika run <name>")
	}

	if runDryRun {
		return outputPlan(w, wf)
	}

	started := time.Now()
	report := launch.NewDispatcherWithLogger(l, logger).OpenWorkflow(wf)
	outputReport(w, report)
	recordRun(ctx, report, started)

	return runOutcome(report, runStrict || currentConfig().Strict)
}

// runOutcome converts a dispatch report into the command's exit status.
func runOutcome(report *launch.Report, strict bool) error {
	if report.AllFailed() {
		return errors.NewSystemError(
			errors.Newf("none of the %d tools in workflow %q could be opened", report.Total(), report.Workflow),
			"check the targets with: antika doctor")
	}
	if strict {
		if n := report.Failed() + report.Skipped(); n > 0 {
			return errors.NewSystemError(
				errors.Newf("%d of %d tools in workflow %q did not open", n, report.Total(), report.Workflow),
				"check the targets with: antika doctor")
		}
	}
	return nil
}

// recordRun appends the run to the history database. Failures are logged
// and never change the command's outcome.
func recordRun(ctx context.Context, report *launch.Report, started time.Time) {
	logger := logging.FromContext(ctx)
	cfg := currentConfig()
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return
	}

	h, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("could not open run history", "path", cfg.History.Path, "error", err.Error())
		return
	}
	defer h.Close()

	run, err := h.Record(history.FromReport(report, started))
	if err != nil {
		logger.Warn("could not record run", "error", err.Error())
		return
	}
	logger.Debug("recorded run", "id", run.ID, "workflow", run.Mode)
}

// outputPlan prints what a run would open.
func outputPlan(w io.Writer, wf workflow.Workflow) error {
	fmt.Fprintf(w, "Workflow %s would open:\n", styleMode(wf.Name))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, target := range wf.Applications() {
		fmt.Fprintf(tw, "  %s\t%s\n", workflow.KindApplication.Label(), target)
	}
	for _, target := range wf.Websites() {
		fmt.Fprintf(tw, "  %s\t%s\n", workflow.KindWebsite.Label(), logging.MaskURL(target))
	}
	return tw.Flush()
}

// outputReport prints one line per tool and a summary.
func outputReport(w io.Writer, report *launch.Report) {
	fmt.Fprintf(w, "Opening workflow %s\n", styleMode(report.Workflow))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, res := range report.Results {
		target := res.Tool.Target
		if res.Tool.Kind == workflow.KindWebsite {
			target = logging.MaskURL(target)
		}

		var icon, note string
		switch res.Status {
		case launch.StatusLaunched:
			icon = styleOK("✓")
		case launch.StatusFailed:
			icon = styleError("✗")
			note = styleMuted(truncate(failureReason(res.Err), 80))
		case launch.StatusSkipped:
			icon = styleWarn("-")
			note = styleMuted("skipped")
		}
		fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", icon, res.Tool.Kind.Label(), target, note)
	}
	_ = tw.Flush()

	parts := []string{fmt.Sprintf("%d opened", report.Succeeded())}
	if n := report.Failed(); n > 0 {
		parts = append(parts, styleError(fmt.Sprintf("%d failed", n)))
	}
	if n := report.Skipped(); n > 0 {
		parts = append(parts, styleWarn(fmt.Sprintf("%d skipped", n)))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}

// pickModeInteractive uses the fuzzy finder on a terminal and a numbered
// prompt otherwise.
func pickModeInteractive(modes []string, index map[string]workflow.Workflow) (string, error) {
	if !logging.IsInteractive(os.Stdin, os.Stdout) {
		choices := make([]prompt.Choice, len(modes))
		for i, m := range modes {
			choices[i] = prompt.Choice{Name: m, Detail: toolSummary(index[m])}
		}
		return prompt.NewSelector().Select("Choose a workflow", choices)
	}

	idx, err := fuzzyfinder.Find(
		modes,
		func(i int) string { return modes[i] },
		fuzzyfinder.WithPromptString("workflow> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return previewWorkflow(index[modes[i]])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", prompt.ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}
	return modes[idx], nil
}

// previewWorkflow renders the fuzzy finder preview pane.
func previewWorkflow(wf workflow.Workflow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workflow: %s\n\n", wf.Name)
	if apps := wf.Applications(); len(apps) > 0 {
		b.WriteString("Applications:\n")
		for _, a := range apps {
			fmt.Fprintf(&b, "  %s\n", a)
		}
	}
	if sites := wf.Websites(); len(sites) > 0 {
		b.WriteString("Websites:\n")
		for _, s := range sites {
			fmt.Fprintf(&b, "  %s\n", logging.MaskURL(s))
		}
	}
	return b.String()
}

// failureReason strips the per-tool wrapper, whose target is already shown.
func failureReason(err error) string {
	if cause := errors.UnwrapOnce(err); cause != nil {
		return cause.Error()
	}
	return err.Error()
}
