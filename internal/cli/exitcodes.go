package cli

import (
	"errors"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: backend query failures or anything not covered below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags, invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: unknown member, job title, department, branch or product type.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: unreadable credentials or fixture files, partial writes.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: empty names, bad dates, mismatched passwords.
	ExitValidation = 5

	// ExitConnection indicates a backend could not be reached.
	ExitConnection = 6
)

// UsageError marks errors caused by how the command was invoked.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var (
		usage   *UsageError
		conn    *models.ConnectionError
		partial *models.PartialWriteError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsage
	case errors.As(err, &conn), errors.Is(err, models.ErrNotConnected):
		return ExitConnection
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	case errors.As(err, &partial):
		return ExitDataErr
	default:
		return ExitError
	}
}

// ErrorCode maps an error to the code string used in JSON output.
func ErrorCode(err error) string {
	switch ExitCode(err) {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitConnection:
		return "CONNECTION_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitDataErr:
		return "PARTIAL_WRITE"
	default:
		return "ERROR"
	}
}

// Suggestion returns a hint for the user, or "".
func Suggestion(err error) string {
	switch ExitCode(err) {
	case ExitConnection:
		return "Check the credentials file (coffeehub db connect-check) and that every backend is running"
	case ExitDataErr:
		return "Some of the data was written; retry the command to finish"
	default:
		return ""
	}
}
