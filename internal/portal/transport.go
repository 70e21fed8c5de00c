package portal

import (
	"net/http"
	"strings"
)

// Transport is the outbound request gatekeeper. It attaches the current
// session token as a bearer credential to every non-public request and
// forces a logout when an authenticated call comes back 401.
//
// Public endpoints never receive the token, and a 401 from them never
// kills the session — the public surface legitimately answers 401 for
// reasons unrelated to it (bad credentials, a stale invite token).
type Transport struct {
	base http.RoundTripper

	// token returns the current session token, or empty when anonymous
	token func() string

	// onUnauthorized is invoked when a non-public call returns 401.
	// Wired to the session service's Logout.
	onUnauthorized func()
}

// NewTransport creates the gatekeeper over the default transport.
func NewTransport(token func() string, onUnauthorized func()) *Transport {
	return &Transport{
		base:           http.DefaultTransport,
		token:          token,
		onUnauthorized: onUnauthorized,
	}
}

// WithBase replaces the underlying round tripper.
func (t *Transport) WithBase(base http.RoundTripper) *Transport {
	t.base = base
	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	public := PublicEndpoint(req.Method, req.URL.Path)

	if !public {
		if tok := t.token(); tok != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !public && t.onUnauthorized != nil {
		// The session is dead server-side; clear it and let the error
		// propagate unchanged for the caller to render.
		t.onUnauthorized()
	}

	return resp, nil
}

// PublicEndpoint reports whether the request targets the portal's public
// surface: identity creation, identity login (plain and tenant-scoped),
// invite lookup by token, and invite acceptance.
func PublicEndpoint(method, path string) bool {
	switch {
	case method == http.MethodPost && path == "/api/auth/login":
		return true
	case method == http.MethodPost && strings.HasPrefix(path, "/api/auth/login/tenant/"):
		return true
	case method == http.MethodPost && path == "/api/auth/register":
		return true
	}

	// Invite lookup and acceptance are keyed by the invite token, not
	// the session. "/api/invites/me" is the caller's own invite list and
	// stays authenticated.
	if rest, ok := strings.CutPrefix(path, "/api/invites/"); ok && rest != "" {
		segments := strings.Split(rest, "/")
		switch {
		case method == http.MethodGet && len(segments) == 1 && segments[0] != "me":
			return true
		case method == http.MethodPost && len(segments) == 2 && segments[1] == "accept":
			return true
		}
	}

	return false
}
