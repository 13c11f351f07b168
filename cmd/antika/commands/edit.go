package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/antika/internal/editor"
	"github.com/thoreinstein/antika/internal/errors"
	"github.com/thoreinstein/antika/internal/store"
)

// openEditor is replaced in tests.
var openEditor = editor.Open

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the workflow file in $EDITOR",
	Long: `Open the workflow file in your editor.

Uses $EDITOR, then $VISUAL, then nano or vi. The file is created with
example entries first if it does not exist.`,
	Example: `  # Edit the workflow file
  antika edit

  # Edit with a specific editor
  EDITOR="code --wait" antika edit

See Also: antika doctor`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	return runEditWithStore(s)
}

func runEditWithStore(s *store.FileStore) error {
	exists, err := s.Exists()
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if !exists {
		if err := s.CreateDefault(); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			return errors.NewSystemError(err, "check that the directory is writable")
		}
	}

	fmt.Fprintf(os.Stderr, "Location: %s\n", s.Path())
	if err := openEditor(s.Path()); err != nil {
		return errors.NewUserError(err, "set $EDITOR to your preferred editor")
	}
	return nil
}
