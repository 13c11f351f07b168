package commands

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go version of antika.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		writeVersion(os.Stdout)
	},
}

func writeVersion(w io.Writer) {
	info := cmd.Current()
	commit := info.Commit
	if info.Modified {
		commit += " (dirty)"
	}
	fmt.Fprintf(w, "antika version %s\n", info.Version)
	fmt.Fprintf(w, "  commit:  %s\n", commit)
	fmt.Fprintf(w, "  built:   %s\n", info.Date)
	fmt.Fprintf(w, "  go:      %s\n", runtime.Version())
	fmt.Fprintf(w, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
