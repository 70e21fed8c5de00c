package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatusClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		code    ErrorCode
	}{
		{"unreachable", 0, "", ErrCodeConnectivity},
		{"unauthorized", 401, "invalid email or password", ErrCodeUnauthorized},
		{"conflict", 409, "email already registered", ErrCodeConflict},
		{"validation", 400, "cnpj is invalid", ErrCodeValidation},
		{"not found", 404, "", ErrCodeValidation},
		{"server fault", 500, "", ErrCodeServerFault},
		{"bad gateway", 502, "", ErrCodeServerFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.status, err.Status)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestServerMessagePassedThrough(t *testing.T) {
	err := FromStatus(409, "tenant with this CNPJ already exists")
	assert.Equal(t, "tenant with this CNPJ already exists", err.Message)
}

func TestCodeOfUnwrapsWrappedErrors(t *testing.T) {
	inner := FromStatus(401, "session expired")
	wrapped := fmt.Errorf("refreshing user: %w", inner)

	assert.Equal(t, ErrCodeUnauthorized, CodeOf(wrapped))
	assert.True(t, IsUnauthorized(wrapped))
	assert.False(t, IsConflict(wrapped))
}

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeTokenDecode, "malformed session token").
		WithSuggestion("Log in again: habitta auth login")

	msg := err.Error()
	assert.Contains(t, msg, "[SESSION-001]")
	assert.Contains(t, msg, "malformed session token")
	assert.Contains(t, msg, "Suggestions:")
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := Wrap(ErrCodeStorageCorrupt, "stored user record is unreadable", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unexpected end of JSON input")
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("boom")))
	assert.False(t, IsConnectivity(fmt.Errorf("boom")))
}
