// Package errors provides error handling conventions for the antika CLI.
//
// The package re-exports the constructors and inspectors of
// github.com/cockroachdb/errors so that callers need a single import, and
// adds an ExitError type that carries a process exit code and an optional
// suggestion for the user.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown workflow, bad flags, existing file)
//   - ExitSystem (2): System-related error (I/O, permissions)
//
// # ExitError
//
// Only the command layer creates ExitError values. Library packages return
// plain wrapped errors and sentinels, and the command layer decides how a
// failure maps onto an exit code:
//
//	if errors.Is(err, store.ErrAlreadyExists) {
//	    return errors.NewUserError(err, "Run: antika edit")
//	}
package errors
