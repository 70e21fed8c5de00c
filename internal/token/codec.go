// Package token decodes the portal's compact session tokens client-side.
//
// The portal issues three-segment dot-delimited tokens; only the middle
// (claims) segment is consumed here. No signature verification happens on
// the client — the server that issued the token over TLS is the trust
// boundary. The local expiry check only avoids sending a token the client
// already knows is stale.
package token

import (
	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
)

// Claims is the decoded payload of a session token.
//
// ActiveTenantID and ActiveRole are absent for orphan users (authenticated
// identities that belong to no tenant yet or have not selected one).
type Claims struct {
	UserID         uint   `json:"user_id"`
	Email          string `json:"email"`
	ActiveTenantID *uint  `json:"active_tenant_id,omitempty"`
	ActiveRole     string `json:"active_role,omitempty"`
	jwt.RegisteredClaims
}

// HasTenant reports whether the token is scoped to a tenant.
func (c *Claims) HasTenant() bool {
	return c.ActiveTenantID != nil
}

// Codec decodes and checks session tokens.
type Codec struct {
	clock  clock.Clock
	parser *jwt.Parser
}

// NewCodec creates a Codec using the wall clock.
func NewCodec() *Codec {
	return NewCodecWithClock(clock.New())
}

// NewCodecWithClock creates a Codec with an injected time source.
// Tests use a mock clock to pin expiry boundaries.
func NewCodecWithClock(c clock.Clock) *Codec {
	return &Codec{
		clock:  c,
		parser: jwt.NewParser(),
	}
}

// Decode extracts the claims from a session token without verifying its
// signature. Any malformed segment, invalid base64, or invalid payload
// yields a SESSION-001 error; callers must treat that as "no claims".
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New(errors.ErrCodeTokenDecode, "empty session token")
	}

	claims := &Claims{}
	if _, _, err := c.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTokenDecode, "malformed session token", err)
	}

	return claims, nil
}

// Valid reports whether the token decodes and has not expired.
// Expiry uses local wall-clock time with a strict comparison: a token
// whose exp equals now is already invalid. Clock skew is not compensated.
func (c *Codec) Valid(tokenString string) bool {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return c.clock.Now().Unix() < claims.ExpiresAt.Unix()
}
