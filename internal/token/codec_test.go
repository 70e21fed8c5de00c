package token

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
)

var testSigningKey = []byte("test-secret")

func signToken(t *testing.T, claims Claims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(testSigningKey)
	require.NoError(t, err)
	return signed
}

func tenantClaims(now time.Time, ttl time.Duration) Claims {
	tenantID := uint(7)
	return Claims{
		UserID:         42,
		Email:          "ana@example.com",
		ActiveTenantID: &tenantID,
		ActiveRole:     "association_manager",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
}

func TestDecode(t *testing.T) {
	mock := clock.NewMock()
	codec := NewCodecWithClock(mock)

	signed := signToken(t, tenantClaims(mock.Now(), time.Hour))

	claims, err := codec.Decode(signed)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	require.True(t, claims.HasTenant())
	assert.Equal(t, uint(7), *claims.ActiveTenantID)
	assert.Equal(t, "association_manager", claims.ActiveRole)
	assert.Equal(t, mock.Now().Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestDecodeOrphanToken(t *testing.T) {
	mock := clock.NewMock()
	codec := NewCodecWithClock(mock)

	signed := signToken(t, Claims{
		UserID: 42,
		Email:  "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(mock.Now().Add(time.Hour)),
		},
	})

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.False(t, claims.HasTenant())
	assert.Empty(t, claims.ActiveRole)
}

func TestDecodeMalformed(t *testing.T) {
	codec := NewCodec()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "nonsense"},
		{"two segments", "aGVhZGVy.cGF5bG9hZA"},
		{"bad base64 payload", "aGVhZGVy.!!!!.c2ln"},
		{"payload is not json", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Decode(tt.token)
			assert.Nil(t, claims)
			require.Error(t, err)
			assert.True(t, errors.IsTokenDecode(err))
		})
	}
}

func TestValidExpiryIsStrict(t *testing.T) {
	mock := clock.NewMock()
	codec := NewCodecWithClock(mock)

	signed := signToken(t, tenantClaims(mock.Now(), time.Hour))

	assert.True(t, codec.Valid(signed))

	// One second before expiry the token is still usable.
	mock.Add(time.Hour - time.Second)
	assert.True(t, codec.Valid(signed))

	// now == exp must already be invalid.
	mock.Add(time.Second)
	assert.False(t, codec.Valid(signed))

	mock.Add(time.Second)
	assert.False(t, codec.Valid(signed))
}

func TestValidRequiresExpiry(t *testing.T) {
	codec := NewCodec()

	signed := signToken(t, Claims{UserID: 42, Email: "ana@example.com"})
	assert.False(t, codec.Valid(signed))
}

func TestValidMalformed(t *testing.T) {
	codec := NewCodec()
	assert.False(t, codec.Valid("garbage"))
	assert.False(t, codec.Valid(""))
}
