package portal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/arturbaldoramos/habitta-cli/internal/session"
)

// InviteStatus is the lifecycle state of an invite.
type InviteStatus string

const (
	InviteStatusPending   InviteStatus = "pending"
	InviteStatusAccepted  InviteStatus = "accepted"
	InviteStatusExpired   InviteStatus = "expired"
	InviteStatusCancelled InviteStatus = "cancelled"
)

// Invite is an invitation for an email address to join a tenant.
type Invite struct {
	ID         uint         `json:"id"`
	TenantID   uint         `json:"tenant_id"`
	Email      string       `json:"email"`
	Role       session.Role `json:"role"`
	Token      string       `json:"token"`
	Status     InviteStatus `json:"status"`
	ExpiresAt  time.Time    `json:"expires_at"`
	AcceptedAt *time.Time   `json:"accepted_at,omitempty"`
	Tenant     *Tenant      `json:"tenant,omitempty"`
}

// CreateInviteRequest invites an email address into the active tenant.
type CreateInviteRequest struct {
	Email string       `json:"email"`
	Role  session.Role `json:"role"`
}

// AcceptInviteRequest is the profile a new user supplies when accepting.
// Existing accounts accept with an empty payload.
type AcceptInviteRequest struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateInvite invites someone into the active tenant. Requires an
// association manager or admin role.
func (c *Client) CreateInvite(ctx context.Context, req CreateInviteRequest) (*Invite, error) {
	var invite Invite
	if err := c.doRequest(ctx, http.MethodPost, "/api/invites", req, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// InviteByToken looks an invite up by its token. Public: works without a
// session, and a 401 here never forces a logout.
func (c *Client) InviteByToken(ctx context.Context, token string) (*Invite, error) {
	var invite Invite
	path := fmt.Sprintf("/api/invites/%s", token)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// AcceptInvite accepts an invite by token, creating the membership (and
// the account, for new users). Public endpoint.
func (c *Client) AcceptInvite(ctx context.Context, token string, req AcceptInviteRequest) (*session.User, error) {
	var user session.User
	path := fmt.Sprintf("/api/invites/%s/accept", token)
	if err := c.doRequest(ctx, http.MethodPost, path, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// MyInvites lists pending invites addressed to the logged-in account.
func (c *Client) MyInvites(ctx context.Context) ([]Invite, error) {
	var invites []Invite
	if err := c.doRequest(ctx, http.MethodGet, "/api/invites/me", nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// RevokeInvite cancels a pending invite of the active tenant.
func (c *Client) RevokeInvite(ctx context.Context, inviteID uint) error {
	path := fmt.Sprintf("/api/invites/%d", inviteID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}
