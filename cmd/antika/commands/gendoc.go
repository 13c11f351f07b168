package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/antika/internal/errors"
)

var (
	genDocDir    string
	genDocFormat string
)

// genDocCmd renders the command reference for the website and packaging.
var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown or man page documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenDocWithWriter(cmd.OutOrStdout(), genDocDir, genDocFormat)
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "Output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "Output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDocWithWriter(w io.Writer, dir, format string) error {
	if dir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "pass --dir")
	}

	var gen func() error
	switch format {
	case "markdown", "md":
		gen = func() error { return doc.GenMarkdownTreeCustom(rootCmd, dir, docFrontMatter, docLink) }
	case "man":
		header := &doc.GenManHeader{Title: "ANTIKA", Section: "1", Source: "antika"}
		gen = func() error { return doc.GenManTree(rootCmd, header, dir) }
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "use markdown or man")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
	}
	// Generated files must not change with the build date.
	rootCmd.DisableAutoGenTag = true
	if err := gen(); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "generating %s", format), "")
	}

	fmt.Fprintf(w, "Documentation generated in %s\n", dir)
	return nil
}

// docTitle turns antika_config_set.md into "antika config set".
func docTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), "_", " ")
}

func docFrontMatter(filename string) string {
	title := docTitle(filename)
	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n", title, "Reference for "+title)
}

func docLink(name string) string {
	return "/reference/" + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
}
