package portal

import (
	"context"
	"net/http"
	"time"

	"github.com/arturbaldoramos/habitta-cli/internal/session"
)

// Tenant is a condominium association.
type Tenant struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	CNPJ   string `json:"cnpj"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`
}

// Membership links the account to one tenant with a role.
type Membership struct {
	ID       uint         `json:"id"`
	UserID   uint         `json:"user_id"`
	TenantID uint         `json:"tenant_id"`
	Role     session.Role `json:"role"`
	IsActive bool         `json:"is_active"`
	JoinedAt time.Time    `json:"joined_at"`
	Tenant   *Tenant      `json:"tenant,omitempty"`
}

// CreateTenantRequest is the payload for creating a condominium.
type CreateTenantRequest struct {
	Name  string `json:"name"`
	CNPJ  string `json:"cnpj"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// MyTenants lists every tenant the account belongs to.
func (c *Client) MyTenants(ctx context.Context) ([]Membership, error) {
	var memberships []Membership
	if err := c.doRequest(ctx, http.MethodGet, "/api/users/me/tenants", nil, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// CreateTenant creates a condominium; the creating user becomes its
// association manager server-side. No token is issued by this call — the
// user selects the new tenant afterwards.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	var tenant Tenant
	if err := c.doRequest(ctx, http.MethodPost, "/api/tenants/create", req, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}
