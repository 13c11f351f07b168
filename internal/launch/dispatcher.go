package launch

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/antika/internal/logging"
	"github.com/thoreinstein/antika/internal/workflow"
)

// Launcher provides the operating system launch primitives.
type Launcher interface {
	// Spawn starts the application at path without waiting for it to exit.
	Spawn(path string) error

	// OpenURL opens rawURL in the default browser.
	OpenURL(rawURL string) error

	// CanOpenURL reports whether OpenURL is usable on this system.
	CanOpenURL() bool
}

// Dispatcher fans a workflow out to a Launcher.
// It holds no state between calls.
type Dispatcher struct {
	launcher Launcher
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher that discards its log output.
func NewDispatcher(l Launcher) *Dispatcher {
	return NewDispatcherWithLogger(l, logging.NewDiscard())
}

// NewDispatcherWithLogger creates a Dispatcher that reports each launch
// through logger.
func NewDispatcherWithLogger(l Launcher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Dispatcher{
		launcher: l,
		logger:   logger,
	}
}

// OpenWorkflow launches every tool in wf, applications first and then
// websites, sequentially and in store order within each kind.
//
// Failures are isolated per tool: they are logged, recorded in the report and
// never stop the remaining tools. If the launcher cannot open URLs at all,
// every website is recorded as skipped and OpenURL is never called.
func (d *Dispatcher) OpenWorkflow(wf workflow.Workflow) *Report {
	report := &Report{Workflow: wf.Name}
	logger := d.logger.With("workflow", wf.Name)

	apps, sites := partition(wf.Tools)
	if len(apps) == 0 {
		logger.Debug("workflow has no applications")
	}
	if len(sites) == 0 {
		logger.Debug("workflow has no websites")
	}

	for _, tool := range apps {
		if err := d.launcher.Spawn(tool.Target); err != nil {
			err = &SpawnError{Target: tool.Target, Err: err}
			logger.Warn("could not start application", "target", tool.Target, "error", err.Error())
			report.add(tool, StatusFailed, err)
			continue
		}
		logger.Info("started application", "target", tool.Target)
		report.add(tool, StatusLaunched, nil)
	}

	if len(sites) == 0 {
		return report
	}

	if !d.launcher.CanOpenURL() {
		logger.Warn("skipping websites: no url opener available", "count", len(sites))
		for _, tool := range sites {
			report.add(tool, StatusSkipped, &URLError{Target: tool.Target, Err: ErrURLUnsupported})
		}
		return report
	}

	for _, tool := range sites {
		if err := d.openURL(tool.Target); err != nil {
			logger.Warn("could not open website", "url", tool.Target, "error", err.Error())
			report.add(tool, StatusFailed, err)
			continue
		}
		logger.Info("opened website", "url", tool.Target)
		report.add(tool, StatusLaunched, nil)
	}

	return report
}

func (d *Dispatcher) openURL(target string) error {
	if err := ValidateURL(target); err != nil {
		return &URLError{Target: target, Err: err}
	}
	if err := d.launcher.OpenURL(target); err != nil {
		return &URLError{Target: target, Err: err}
	}
	return nil
}

// partition splits tools by kind, preserving relative order.
func partition(tools []workflow.Tool) (apps, sites []workflow.Tool) {
	for _, t := range tools {
		switch t.Kind {
		case workflow.KindApplication:
			apps = append(apps, t)
		case workflow.KindWebsite:
			sites = append(sites, t)
		}
	}
	return apps, sites
}

// ValidateURL checks that target is an absolute URL with a scheme and host,
// or a file: URL with a path.
func ValidateURL(target string) error {
	shown := logging.MaskURL(target)
	if strings.ContainsAny(target, " \t\r\n") {
		return errors.Wrapf(ErrInvalidURL, "%q contains whitespace", shown)
	}
	u, err := url.Parse(target)
	if err != nil {
		// *url.Error repeats the raw URL, credentials included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return errors.Mark(errors.Wrapf(err, "parsing %q", shown), ErrInvalidURL)
	}
	if u.Scheme == "" {
		return errors.Wrapf(ErrInvalidURL, "%q has no scheme (e.g. https://)", shown)
	}
	if u.Scheme == "file" {
		if u.Path == "" {
			return errors.Wrapf(ErrInvalidURL, "%q has no path", shown)
		}
		return nil
	}
	if u.Host == "" {
		return errors.Wrapf(ErrInvalidURL, "%q has no host", shown)
	}
	return nil
}
