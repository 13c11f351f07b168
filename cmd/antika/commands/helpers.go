package commands

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/thoreinstein/antika/internal/workflow"
)

// Output styles. fatih/color disables them when stdout is not a terminal
// or NO_COLOR is set.
var (
	styleBold  = color.New(color.Bold).SprintFunc()
	styleMode  = color.New(color.FgCyan, color.Bold).SprintFunc()
	styleOK    = color.New(color.FgGreen).SprintFunc()
	styleWarn  = color.New(color.FgYellow).SprintFunc()
	styleError = color.New(color.FgRed).SprintFunc()
	styleMuted = color.New(color.FgHiBlack).SprintFunc()
)

// workflowIndex returns the workflows of tools keyed by mode.
func workflowIndex(tools []workflow.Tool) map[string]workflow.Workflow {
	groups := workflow.Group(tools)
	index := make(map[string]workflow.Workflow, len(groups))
	for _, wf := range groups {
		index[wf.Name] = wf
	}
	return index
}

// toolSummary describes a workflow's contents, e.g. "2 apps, 1 website".
func toolSummary(wf workflow.Workflow) string {
	return fmt.Sprintf("%s, %s",
		plural(len(wf.Applications()), "app", "apps"),
		plural(len(wf.Websites()), "website", "websites"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
