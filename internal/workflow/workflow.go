package workflow

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
)

// ErrNotFound indicates no workflow matched the requested mode.
var ErrNotFound = errors.New("workflow not found")

// Workflow is the ordered group of tools that share a mode.
type Workflow struct {
	Name  string `json:"name"`
	Tools []Tool `json:"tools"`
}

// Applications returns the application targets in tool order.
func (w Workflow) Applications() []string {
	return w.targets(KindApplication)
}

// Websites returns the website targets in tool order.
func (w Workflow) Websites() []string {
	return w.targets(KindWebsite)
}

func (w Workflow) targets(kind Kind) []string {
	var out []string
	for _, t := range w.Tools {
		if t.Kind == kind {
			out = append(out, t.Target)
		}
	}
	return out
}

// NotFoundError is returned by Resolve when no mode matches.
// Known holds every mode that does exist so callers can offer alternatives.
type NotFoundError struct {
	Requested string
	Known     mapset.Set[string]
}

func (e *NotFoundError) Error() string {
	if e.Known == nil || e.Known.Cardinality() == 0 {
		return "workflow " + quote(e.Requested) + " not found: no workflows are defined"
	}
	known := e.Known.ToSlice()
	slices.Sort(known)
	return "workflow " + quote(e.Requested) + " not found (available: " + strings.Join(known, ", ") + ")"
}

// Is lets errors.Is match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SortedKnown returns Known in lexicographic order.
func (e *NotFoundError) SortedKnown() []string {
	if e.Known == nil {
		return nil
	}
	known := e.Known.ToSlice()
	slices.Sort(known)
	return known
}

func quote(s string) string {
	return `"` + s + `"`
}

// ListModes returns the distinct modes across tools.
func ListModes(tools []Tool) mapset.Set[string] {
	modes := mapset.NewSetWithSize[string](len(tools))
	for _, t := range tools {
		modes.Add(t.Mode)
	}
	return modes
}

// SortedModes returns the distinct modes in lexicographic order.
func SortedModes(tools []Tool) []string {
	modes := ListModes(tools).ToSlice()
	slices.Sort(modes)
	return modes
}

// Group splits tools into workflows.
// Workflows appear in the order their mode was first seen, and each keeps its
// tools in store order.
func Group(tools []Tool) []Workflow {
	index := make(map[string]int)
	var groups []Workflow
	for _, t := range tools {
		i, ok := index[t.Mode]
		if !ok {
			i = len(groups)
			index[t.Mode] = i
			groups = append(groups, Workflow{Name: t.Mode})
		}
		groups[i].Tools = append(groups[i].Tools, t)
	}
	return groups
}

// Resolve finds the workflow for requested.
//
// The name is trimmed and matched case-insensitively. An exact match is
// preferred when several modes differ only in case. If nothing matches, the
// error is a *NotFoundError carrying ListModes(tools).
func Resolve(tools []Tool, requested string) (Workflow, error) {
	name := strings.TrimSpace(requested)
	if name == "" {
		return Workflow{}, &NotFoundError{Requested: requested, Known: ListModes(tools)}
	}

	var match *Workflow
	groups := Group(tools)
	for i := range groups {
		g := &groups[i]
		if g.Name == name {
			match = g
			break
		}
		if match == nil && strings.EqualFold(g.Name, name) {
			match = g
		}
	}

	if match == nil || len(match.Tools) == 0 {
		return Workflow{}, &NotFoundError{Requested: name, Known: ListModes(tools)}
	}
	return *match, nil
}
