package launch

import (
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pkg/browser"
	"mvdan.cc/sh/v3/shell"

	"github.com/thoreinstein/antika/internal/paths"
)

// urlOpeners lists the helpers pkg/browser relies on, per GOOS.
var urlOpeners = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open", "x-www-browser", "www-browser", "wslview"},
	"freebsd": {"xdg-open"},
	"openbsd": {"xdg-open"},
	"netbsd":  {"xdg-open"},
}

// SystemLauncher launches tools with os/exec and the default browser.
type SystemLauncher struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
	command  func(name string, args ...string) *exec.Cmd
	openURL  func(string) error
}

var _ Launcher = (*SystemLauncher)(nil)

// NewSystemLauncher creates a Launcher for the running operating system.
// Browser helper output is discarded so it cannot interleave with the CLI's.
func NewSystemLauncher() *SystemLauncher {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &SystemLauncher{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		command:  exec.Command,
		openURL:  browser.OpenURL,
	}
}

// Spawn starts the application at path and returns without waiting for it.
// Environment references ($HOME, ${APPDIR}) and a leading ~/ are expanded
// first. On macOS, .app bundles are started through "open -a".
func (l *SystemLauncher) Spawn(path string) error {
	target, err := ExpandTarget(path, l.getenv)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	if l.goos == "darwin" && strings.HasSuffix(strings.TrimSuffix(target, "/"), ".app") {
		cmd = l.command("open", "-a", target)
	} else {
		cmd = l.command(target)
	}
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "starting process")
	}
	// Launched applications outlive this process; nothing waits on them.
	return errors.Wrap(cmd.Process.Release(), "releasing process")
}

// OpenURL opens rawURL in the default browser.
func (l *SystemLauncher) OpenURL(rawURL string) error {
	return errors.Wrap(l.openURL(rawURL), "opening browser")
}

// CanOpenURL reports whether a URL opener exists for this system.
// Windows always has one; elsewhere one of the helpers must be on PATH.
func (l *SystemLauncher) CanOpenURL() bool {
	if l.goos == "windows" {
		return true
	}
	for _, helper := range urlOpeners[l.goos] {
		if _, err := l.lookPath(helper); err == nil {
			return true
		}
	}
	return false
}

// ExpandTarget expands environment references and a leading ~ in an
// application target. Targets without '$' or '~' are returned unchanged, so
// Windows paths keep their backslashes.
func ExpandTarget(target string, getenv func(string) string) (string, error) {
	out := target
	if strings.Contains(out, "$") {
		expanded, err := shell.Expand(out, getenv)
		if err != nil {
			return "", errors.Wrapf(err, "expanding %q", target)
		}
		out = expanded
	}
	out, err := paths.ExpandHome(out)
	if err != nil {
		return "", errors.Wrapf(err, "expanding %q", target)
	}
	if strings.TrimSpace(out) == "" {
		return "", errors.Newf("%q expands to an empty path", target)
	}
	return out, nil
}
