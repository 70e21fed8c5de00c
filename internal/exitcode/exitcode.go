package exitcode

import (
	"os"
	"strings"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or session failure
	AuthError = 3

	// AccessDenied indicates the session state does not permit the command
	AccessDenied = 4

	// NetworkError indicates the portal was unreachable
	NetworkError = 5

	// ValidationError indicates the portal rejected the request payload
	ValidationError = 6
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.CodeOf(err) {
	case errors.ErrCodeUnauthorized,
		errors.ErrCodeNotAuthenticated,
		errors.ErrCodeTokenDecode,
		errors.ErrCodeTokenExpired:
		return AuthError
	case errors.ErrCodeNoActiveTenant,
		errors.ErrCodeActiveTenantSet,
		errors.ErrCodeAlreadyLoggedIn:
		return AccessDenied
	case errors.ErrCodeConnectivity:
		return NetworkError
	case errors.ErrCodeValidation, errors.ErrCodeConflict:
		return ValidationError
	}

	// Cobra reports flag and argument problems as plain errors.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "unknown flag") ||
		strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case AccessDenied:
		return "Access denied for the current session state"
	case NetworkError:
		return "Network error"
	case ValidationError:
		return "Request rejected by the portal"
	default:
		return "Unknown error"
	}
}
