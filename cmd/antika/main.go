// Package main is the entry point for the antika CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/antika/cmd/antika/commands"
	"github.com/thoreinstein/antika/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		if msg := commands.ErrorMessage(err); msg != "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
			if s := errors.Suggestion(err); s != "" {
				fmt.Fprintf(os.Stderr, "  %s\n", s)
			}
		}
		os.Exit(errors.ExitCode(err))
	}
}
