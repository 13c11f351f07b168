package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/store"
	"github.com/thoreinstein/antika/internal/workflow"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <workflow>",
	Short: "Show the tools of a workflow",
	Long: `Show the applications and websites a workflow opens, in the order
antika opens them. The name is matched case-insensitively.`,
	Example: `  # Show the "work" workflow
  antika show work

  # Output as JSON
  antika show work --json

See Also: antika list, antika run`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	return runShowWithWriter(os.Stdout, os.Stderr, s, args[0])
}

// runShowWithWriter allows injecting writers and a store for testing.
func runShowWithWriter(w, errW io.Writer, s store.ConfigStore, mode string) error {
	tools, err := s.LoadTools()
	if err != nil {
		return errors.NewSystemError(err, "check the workflow file with: antika doctor")
	}

	wf, err := workflow.Resolve(tools, mode)
	if err != nil {
		var nf *workflow.NotFoundError
		if errors.As(err, &nf) {
			writeNumberedModes(errW, nf.SortedKnown())
		}
		return errors.NewUserError(err, "run: antika list")
	}

	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(workflowJSON{
			Mode:         wf.Name,
			Applications: nonNil(wf.Applications()),
			Websites:     nonNil(wf.Websites()),
		}), "encoding JSON")
	}

	fmt.Fprintf(w, "%s %s\n\n", styleBold("Workflow:"), styleMode(wf.Name))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\n", styleBold("KIND"), styleBold("TARGET"))
	for _, t := range wf.Tools {
		target := t.Target
		if t.Kind == workflow.KindWebsite {
			target = logging.MaskURL(target)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", t.Kind.Label(), target)
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing output")
	}
	fmt.Fprintf(w, "\n%s\n", styleMuted(toolSummary(wf)))
	return nil
}
