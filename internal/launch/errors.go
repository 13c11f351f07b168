package launch

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for dispatch failures.
var (
	// ErrSpawn marks a failed application launch.
	ErrSpawn = errors.New("failed to start application")

	// ErrOpenURL marks a failed website launch.
	ErrOpenURL = errors.New("failed to open url")

	// ErrInvalidURL indicates a website target is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrURLUnsupported indicates no URL opener is available on this system.
	ErrURLUnsupported = errors.New("opening urls is not supported on this system")
)

// SpawnError reports a failed application launch.
type SpawnError struct {
	Target string
	Err    error
}

func (e *SpawnError) Error() string {
	return "starting " + e.Target + ": " + e.Err.Error()
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrSpawn.
func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

// URLError reports a failed website launch.
type URLError struct {
	Target string
	Err    error
}

func (e *URLError) Error() string {
	return "opening " + e.Target + ": " + e.Err.Error()
}

func (e *URLError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrOpenURL.
func (e *URLError) Is(target error) bool { return target == ErrOpenURL }
