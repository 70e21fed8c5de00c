package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arturbaldoramos/habitta-cli/internal/session"
)

// loginRequest is the credential payload for both login endpoints.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse mirrors the portal's login payload: a token for orphan or
// single-tenant accounts, or a tenant candidate list when ambiguous.
type loginResponse struct {
	Token   string                    `json:"token,omitempty"`
	User    *session.User             `json:"user"`
	Tenants []session.TenantCandidate `json:"tenants,omitempty"`
}

// switchTenantResponse carries the freshly scoped token.
type switchTenantResponse struct {
	Token string `json:"token"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*session.LoginResult, error) {
	var resp loginResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &session.LoginResult{
		Token:      resp.Token,
		User:       resp.User,
		Candidates: resp.Tenants,
	}, nil
}

// LoginWithTenant authenticates against a specific tenant, returning a
// token bound to it.
func (c *Client) LoginWithTenant(ctx context.Context, email, password string, tenantID uint) (*session.LoginResult, error) {
	var resp loginResponse
	path := fmt.Sprintf("/api/auth/login/tenant/%d", tenantID)
	err := c.doRequest(ctx, http.MethodPost, path, loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &session.LoginResult{
		Token: resp.Token,
		User:  resp.User,
	}, nil
}

// SwitchTenant exchanges the current token for one scoped to tenantID.
func (c *Client) SwitchTenant(ctx context.Context, tenantID uint) (string, error) {
	var resp switchTenantResponse
	path := fmt.Sprintf("/api/auth/switch-tenant/%d", tenantID)
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new orphan identity. The caller logs in separately.
func (c *Client) Register(ctx context.Context, req session.RegisterRequest) (*session.User, error) {
	var user session.User
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the identity record of the logged-in account.
func (c *Client) CurrentUser(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.doRequest(ctx, http.MethodGet, "/api/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
