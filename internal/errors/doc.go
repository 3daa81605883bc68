// Package errors provides error handling conventions for the khelp CLI.
//
// This package defines sentinel errors for the core error taxonomy
// (not found, conflict, parse, validation, editor), an ExitError type
// for CLI exit code handling, and exit code constants following
// standard Unix conventions. It also re-exports the wrapping helpers
// from github.com/cockroachdb/errors so call sites need a single
// errors import.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found case
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown name, conflict, bad input)
//   - ExitSystem (2): System-related error (I/O, permissions, editor launch)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [Unwrap] and [As]:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
