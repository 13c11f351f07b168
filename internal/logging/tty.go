package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// noColorEnv disables color when any of them is present, even if empty.
// See https://no-color.org.
var noColorEnv = []string{"NO_COLOR", "ANTIKA_NO_COLOR"}

type fder interface{ Fd() uintptr }

func isTerminal(v any) bool {
	f, ok := v.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether w is a terminal. Anything with an Fd method is
// checked, so *os.File and wrappers around it both work.
func IsTTY(w io.Writer) bool { return isTerminal(w) }

// IsInteractive reports whether a user can answer a prompt: r and w must
// both be terminals.
func IsInteractive(r io.Reader, w io.Writer) bool {
	return isTerminal(r) && isTerminal(w)
}

// SupportsColor reports whether ANSI colors should be written to w.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(tty bool) bool {
	for _, name := range noColorEnv {
		if _, set := os.LookupEnv(name); set {
			return false
		}
	}
	return tty && os.Getenv("TERM") != "dumb"
}
