// Package editor launches the user's preferred text editor.
package editor

import (
	"io"
	"os"
	"os/exec"
	"runtime"

	"mvdan.cc/sh/v3/shell"

	"github.com/thoreinstein/antika/internal/errors"
)

// ErrNoEditor indicates the editor setting parsed to an empty command.
var ErrNoEditor = errors.New("no editor configured")

// Open runs the user's editor on path and waits for it to exit.
func Open(path string) error {
	return OpenWithIO(path, os.Stdin, os.Stdout, os.Stderr)
}

// OpenWithIO is Open with explicit standard streams.
func OpenWithIO(path string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %q", cmd.Path)
	}
	return nil
}

// Command builds the editor invocation for path. Editor settings may carry
// arguments ("code --wait"); they are split with shell quoting rules.
func Command(path string) (*exec.Cmd, error) {
	fields, err := shell.Fields(detectEditor(), os.Getenv)
	if err != nil {
		return nil, errors.Wrap(err, "parsing editor command")
	}
	if len(fields) == 0 {
		return nil, ErrNoEditor
	}
	args := append(fields[1:], path)
	return exec.Command(fields[0], args...), nil
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// editorEnv lists the variables consulted, in order. An empty value counts
// as unset.
var editorEnv = []string{"EDITOR", "VISUAL"}

// detectEditor picks the editor command: the first non-empty editorEnv
// variable, then notepad on Windows, then nano if installed, then vi.
func detectEditor() string {
	for _, name := range editorEnv {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	if _, err := lookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
