package workflow

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind selects the launch mechanism for a tool.
type Kind string

const (
	// KindApplication is spawned as a process.
	KindApplication Kind = "APP"

	// KindWebsite is opened in the default browser.
	KindWebsite Kind = "WEB"
)

// Validation errors returned by Tool.Validate and ParseKind.
var (
	ErrEmptyMode   = errors.New("mode is required")
	ErrEmptyKind   = errors.New("kind is required")
	ErrEmptyTarget = errors.New("target is required")
	ErrUnknownKind = errors.New("unknown tool kind")
)

// kindAliases maps accepted spellings (upper-cased) to a Kind.
var kindAliases = map[string]Kind{
	"APP":         KindApplication,
	"APPLICATION": KindApplication,
	"WEB":         KindWebsite,
	"WEBSITE":     KindWebsite,
}

// ParseKind parses a kind column case-insensitively.
// "APP" and "APPLICATION" map to KindApplication, "WEB" and "WEBSITE" to
// KindWebsite.
func ParseKind(s string) (Kind, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if key == "" {
		return "", ErrEmptyKind
	}
	k, ok := kindAliases[key]
	if !ok {
		return "", errors.Wrapf(ErrUnknownKind, "%q", s)
	}
	return k, nil
}

// String returns the canonical column value.
func (k Kind) String() string {
	return string(k)
}

// Label returns a human readable name.
func (k Kind) Label() string {
	switch k {
	case KindApplication:
		return "application"
	case KindWebsite:
		return "website"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindApplication || k == KindWebsite
}

// Tool is a single launchable unit.
type Tool struct {
	// Mode is the workflow this tool belongs to.
	Mode string `json:"mode" yaml:"mode"`

	// Kind selects process spawning or URL opening.
	Kind Kind `json:"kind" yaml:"kind"`

	// Target is an executable path for applications or a URL for websites.
	Target string `json:"target" yaml:"target"`
}

// NewTool builds a Tool from raw column values, trimming whitespace and
// parsing the kind. The result is validated.
func NewTool(mode, kind, target string) (Tool, error) {
	t := Tool{
		Mode:   strings.TrimSpace(mode),
		Target: strings.TrimSpace(target),
	}
	if t.Mode == "" {
		return Tool{}, ErrEmptyMode
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Tool{}, err
	}
	t.Kind = k
	if t.Target == "" {
		return Tool{}, ErrEmptyTarget
	}
	return t, nil
}

// Validate returns the first invariant violation, or nil.
func (t Tool) Validate() error {
	switch {
	case strings.TrimSpace(t.Mode) == "":
		return ErrEmptyMode
	case t.Kind == "":
		return ErrEmptyKind
	case !t.Kind.Valid():
		return errors.Wrapf(ErrUnknownKind, "%q", string(t.Kind))
	case strings.TrimSpace(t.Target) == "":
		return ErrEmptyTarget
	}
	return nil
}

// Values returns the tool as mode, kind and target columns.
func (t Tool) Values() []string {
	return []string{t.Mode, t.Kind.String(), t.Target}
}
