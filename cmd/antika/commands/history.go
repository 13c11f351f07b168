package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/history"
)

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently opened workflows",
	Long: `Show the most recent runs, newest first, with how many tools opened,
failed or were skipped.

Runs are recorded by "antika run" unless history.enabled is false.`,
	Example: `  # Last 10 runs
  antika history

  # Last 3 runs as JSON
  antika history -n 3 --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg := currentConfig()
	if !cfg.History.Enabled {
		fmt.Fprintln(os.Stdout, "Run history is disabled (history.enabled: false)")
		return nil
	}
	return runHistoryWithWriter(os.Stdout, cfg.History.Path)
}

// runHistoryWithWriter allows injecting a writer and database path for testing.
func runHistoryWithWriter(w io.Writer, path string) error {
	if historyLimit < 0 {
		return errors.NewUserError(errors.Newf("invalid --limit %d", historyLimit), "use 0 for all runs")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if historyJSON {
			fmt.Fprintln(w, "[]")
			return nil
		}
		fmt.Fprintln(w, "No runs recorded yet")
		return nil
	}

	h, err := history.Open(path)
	if err != nil {
		if errors.Is(err, history.ErrLocked) {
			return errors.NewUserError(err, "another antika process is running; try again")
		}
		return errors.NewSystemError(err, "")
	}
	defer h.Close()

	runs, err := h.Recent(historyLimit)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if historyJSON {
		if runs == nil {
			runs = []history.Run{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(runs), "encoding JSON")
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		styleBold("WHEN"), styleBold("WORKFLOW"), styleBold("OPENED"), styleBold("FAILED"), styleBold("SKIPPED"))
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
			r.StartedAt.Local().Format(time.DateTime), styleMode(r.Mode), r.Launched, r.Failed, r.Skipped)
	}
	return tw.Flush()
}
