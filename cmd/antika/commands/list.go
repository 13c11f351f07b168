package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/store"
	"github.com/thoreinstein/antika/internal/workflow"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the available workflows",
	Long: `List every workflow in the workflow file, numbered in alphabetical order,
with the number of applications and websites each one opens.

The workflow file is created with example entries if it does not exist.`,
	Example: `  # List workflows
  antika list

  # Output as JSON
  antika list --json

See Also: antika show, antika run`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// workflowJSON represents a workflow in JSON output format.
type workflowJSON struct {
	Index        int      `json:"index"`
	Mode         string   `json:"mode"`
	Applications []string `json:"applications"`
	Websites     []string `json:"websites"`
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	return runListWithWriter(os.Stdout, s)
}

// runListWithWriter allows injecting a writer and store for testing.
func runListWithWriter(w io.Writer, s store.ConfigStore) error {
	tools, err := s.LoadTools()
	if err != nil {
		return errors.NewSystemError(err, "check the workflow file with: antika doctor")
	}

	modes := workflow.SortedModes(tools)
	index := workflowIndex(tools)

	if listJSON {
		return outputWorkflowsJSON(w, modes, index)
	}
	return outputWorkflowsTabular(w, modes, index)
}

func outputWorkflowsJSON(w io.Writer, modes []string, index map[string]workflow.Workflow) error {
	out := make([]workflowJSON, 0, len(modes))
	for i, mode := range modes {
		wf := index[mode]
		out = append(out, workflowJSON{
			Index:        i + 1,
			Mode:         mode,
			Applications: nonNil(wf.Applications()),
			Websites:     nonNil(wf.Websites()),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "encoding JSON")
}

func outputWorkflowsTabular(w io.Writer, modes []string, index map[string]workflow.Workflow) error {
	if len(modes) == 0 {
		fmt.Fprintln(w, "No workflows defined")
		fmt.Fprintln(w, styleMuted("Add some with: antika edit"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", styleBold("#"), styleBold("WORKFLOW"), styleBold("TOOLS"))
	for i, mode := range modes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, styleMode(mode), toolSummary(index[mode]))
	}
	return tw.Flush()
}

// writeNumberedModes prints the numbered workflow list used in error output.
func writeNumberedModes(w io.Writer, modes []string) {
	if len(modes) == 0 {
		fmt.Fprintln(w, "No workflows are defined.")
		return
	}
	fmt.Fprintln(w, "Available workflows:")
	for i, mode := range modes {
		fmt.Fprintf(w, "  %d. %s\n", i+1, mode)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
