package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/store"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the workflow file with example entries",
	Long: `Create the workflow file with one example application and one example
website in the "example" workflow.

The format follows the file extension (.csv, .yaml, .yml, .json, .toml).
An existing file is never overwritten.`,
	Example: `  # Create the default workflow file
  antika init

  # Create a YAML workflow file elsewhere
  antika init --file ~/workflows.yaml

See Also: antika edit, antika list`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	return runInitWithWriter(os.Stdout, s)
}

// runInitWithWriter allows injecting a writer and store for testing.
func runInitWithWriter(w io.Writer, s *store.FileStore) error {
	if err := s.CreateDefault(); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return errors.NewUserError(err, "edit the existing file with: antika edit")
		}
		return errors.NewSystemError(err, "check that the directory is writable")
	}

	fmt.Fprintf(w, "Created %s\n", s.Path())
	fmt.Fprintln(w, styleMuted("Add your workflows with: antika edit"))
	return nil
}
