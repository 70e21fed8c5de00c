package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeTokenDecode      ErrorCode = "SESSION-001"
	ErrCodeTokenExpired     ErrorCode = "SESSION-002"
	ErrCodeNotAuthenticated ErrorCode = "SESSION-003"
	ErrCodeNoActiveTenant   ErrorCode = "SESSION-004"
	ErrCodeStorageCorrupt   ErrorCode = "SESSION-005"
	ErrCodeStorageWrite     ErrorCode = "SESSION-006"
	ErrCodeActiveTenantSet  ErrorCode = "SESSION-007"
	ErrCodeAlreadyLoggedIn  ErrorCode = "SESSION-008"

	// Portal API errors (API-001 to API-099)
	ErrCodeUnauthorized ErrorCode = "API-001"
	ErrCodeConflict     ErrorCode = "API-002"
	ErrCodeConnectivity ErrorCode = "API-003"
	ErrCodeValidation   ErrorCode = "API-004"
	ErrCodeServerFault  ErrorCode = "API-005"
	ErrCodeBadResponse  ErrorCode = "API-006"
)

// PortalError represents an enhanced error with code, suggestions, and an
// optional HTTP status from the portal API
type PortalError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Status      int
	Cause       error
}

// Error implements the error interface
func (e *PortalError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PortalError) Unwrap() error {
	return e.Cause
}

// New creates a new PortalError
func New(code ErrorCode, message string) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PortalError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PortalError {
	return &PortalError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *PortalError) WithSuggestion(suggestion string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *PortalError) WithSuggestions(suggestions ...string) *PortalError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithStatus records the HTTP status that produced the error
func (e *PortalError) WithStatus(status int) *PortalError {
	e.Status = status
	return e
}

// WithCause attaches the underlying error
func (e *PortalError) WithCause(cause error) *PortalError {
	e.Cause = cause
	return e
}

// FromStatus classifies a portal API failure by HTTP-like status code.
// Status 0 means the server was unreachable. The message, when present,
// is the server-provided one and is surfaced verbatim to the caller.
func FromStatus(status int, message string) *PortalError {
	switch {
	case status == 0:
		return New(ErrCodeConnectivity, "cannot reach the Habitta portal").
			WithStatus(0).
			WithSuggestion("Check your network connection").
			WithSuggestion("Verify the portal address in ~/.habitta/config.yaml")
	case status == 401:
		if message == "" {
			message = "unauthorized"
		}
		return New(ErrCodeUnauthorized, message).
			WithStatus(status).
			WithSuggestion("Log in again: habitta auth login")
	case status == 409:
		if message == "" {
			message = "conflicting value for a unique field"
		}
		return New(ErrCodeConflict, message).WithStatus(status)
	case status >= 400 && status < 500:
		if message == "" {
			message = fmt.Sprintf("request rejected with status %d", status)
		}
		return New(ErrCodeValidation, message).WithStatus(status)
	default:
		if message == "" {
			message = fmt.Sprintf("portal request failed with status %d", status)
		}
		return New(ErrCodeServerFault, message).WithStatus(status)
	}
}

// CodeOf returns the ErrorCode of err, or empty when err is not a PortalError
func CodeOf(err error) ErrorCode {
	var pe *PortalError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsUnauthorized reports whether err is a 401-class portal error
func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

// IsConflict reports whether err is a 409-class portal error
func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

// IsConnectivity reports whether err means the portal was unreachable
func IsConnectivity(err error) bool {
	return CodeOf(err) == ErrCodeConnectivity
}

// IsTokenDecode reports whether err came from decoding a malformed token
func IsTokenDecode(err error) bool {
	return CodeOf(err) == ErrCodeTokenDecode
}
