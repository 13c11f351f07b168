package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes. See the package documentation.
const (
	ExitSuccess = 0
	ExitUser    = 1
	ExitSystem  = 2
)

// Re-exported constructors and inspectors.
var (
	New      = crdb.New
	Newf     = crdb.Newf
	Wrap     = crdb.Wrap
	Wrapf    = crdb.Wrapf
	Is       = crdb.Is
	As       = crdb.As
	Mark     = crdb.Mark
	WithHint = crdb.WithHint
	GetHints = crdb.GetAllHints

	UnwrapOnce = crdb.UnwrapOnce
)

// ExitError carries the exit code for a failed command and, optionally, a
// line of advice printed under the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError attaches code to err. err may be nil when the command has
// already reported the failure itself.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError marks err as the user's to fix.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError marks err as an environment failure.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError is a user error pointing at the doctor command.
func NewConfigError(err error) *ExitError {
	return NewUserError(err, "Run: antika doctor")
}

// Error falls back to the exit code when Err is nil.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code carried by err.
// A nil error maps to ExitSuccess and an error without an ExitError in its
// chain maps to ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}

// Suggestion returns the first suggestion found in err's chain, falling back
// to any hint attached with WithHint.
func Suggestion(err error) string {
	var exitErr *ExitError
	if As(err, &exitErr) && exitErr.Suggestion != "" {
		return exitErr.Suggestion
	}
	if hints := GetHints(err); len(hints) > 0 {
		return hints[0]
	}
	return ""
}
