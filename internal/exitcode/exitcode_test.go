package exitcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, Success},
		{"unauthorized", errors.FromStatus(401, ""), AuthError},
		{"not authenticated", errors.New(errors.ErrCodeNotAuthenticated, "log in first"), AuthError},
		{"expired token", errors.New(errors.ErrCodeTokenExpired, "token expired"), AuthError},
		{"no active tenant", errors.New(errors.ErrCodeNoActiveTenant, "pick a tenant"), AccessDenied},
		{"already tenanted", errors.New(errors.ErrCodeActiveTenantSet, "already in a condominium"), AccessDenied},
		{"already logged in", errors.New(errors.ErrCodeAlreadyLoggedIn, "already logged in"), AccessDenied},
		{"connectivity", errors.FromStatus(0, ""), NetworkError},
		{"conflict", errors.FromStatus(409, "email taken"), ValidationError},
		{"validation", errors.FromStatus(422, "bad cnpj"), ValidationError},
		{"server fault", errors.FromStatus(500, ""), GeneralError},
		{"cobra unknown command", fmt.Errorf(`unknown command "frobnicate" for "habitta"`), UsageError},
		{"plain error", fmt.Errorf("something broke"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	assert.Equal(t, "Success", GetExitCodeDescription(Success))
	assert.Equal(t, "Authentication error", GetExitCodeDescription(AuthError))
	assert.Equal(t, "Unknown error", GetExitCodeDescription(99))
}
