// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/antika/internal/errors"
)

// Sentinel errors for workflow selection.
var (
	ErrNoChoices          = errors.New("no workflows to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Choice is one numbered entry in a selection prompt.
type Choice struct {
	// Name is what the user picks, e.g. a workflow mode.
	Name string

	// Detail is shown in parentheses after the name. Optional.
	Detail string
}

// Selector handles interactive numbered selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stderr, keeping stdout
// free for command output.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stderr,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Select prompts the user to choose one of choices and returns its Name.
// The answer may be the 1-based number or the name itself (case-insensitive).
//
// Returns:
//   - ErrNoChoices if the list is empty
//   - The only choice if there is exactly one (auto-selects without prompting)
//   - The first choice on an empty answer
//   - ErrInvalidSelection if the answer matches nothing
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(title string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	if len(choices) == 1 {
		return choices[0].Name, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	width := len(strconv.Itoa(len(choices)))
	for i, c := range choices {
		if c.Detail != "" {
			fmt.Fprintf(s.writer, "  [%*d] %s (%s)\n", width, i+1, c.Name, c.Detail)
		} else {
			fmt.Fprintf(s.writer, "  [%*d] %s\n", width, i+1, c.Name)
		}
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return choices[0].Name, nil
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(choices) {
			return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(choices))
		}
		return choices[n-1].Name, nil
	}

	for _, c := range choices {
		if strings.EqualFold(c.Name, input) {
			return c.Name, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidSelection, "%q matches no workflow", input)
}

// Names converts plain names to choices without details.
func Names(names []string) []Choice {
	out := make([]Choice, len(names))
	for i, n := range names {
		out[i] = Choice{Name: n}
	}
	return out
}
