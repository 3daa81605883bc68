package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (unknown name, conflict, bad input).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, editor launch).
	ExitSystem = 2
)

// Sentinel errors for the core error taxonomy. Every error returned by
// the document engine wraps exactly one of these, so callers can map
// failures to exit codes and messages with errors.Is.
var (
	// ErrNotFound indicates a referenced context, cluster, or user name is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a name collision with no resolvable policy.
	ErrConflict = errors.New("name conflict")

	// ErrParse indicates malformed kubeconfig content.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates content that violates document invariants.
	ErrValidation = errors.New("validation error")

	// ErrEditor indicates the external editor could not be launched or exited non-zero.
	ErrEditor = errors.New("editor error")
)

// Re-exports from cockroachdb/errors so call sites use a single import.
var (
	New    = errors.New
	Newf   = errors.Newf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Mark   = errors.Mark
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for
// CLI rendering. It implements the error interface and supports
// unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to a process exit code. A nil error is
// ExitSuccess; an ExitError carries its own code; the taxonomy
// sentinels are user errors; everything else is a system error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case Is(err, ErrNotFound), Is(err, ErrConflict), Is(err, ErrParse), Is(err, ErrValidation):
		return ExitUser
	default:
		return ExitSystem
	}
}
