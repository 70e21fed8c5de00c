package session

// Role is the role a user holds inside one tenant. Roles are tenant-scoped:
// the same account may be an administrator in one condominium and a plain
// resident in another, so a role is only meaningful next to an active tenant.
type Role string

const (
	// RoleAdmin is the platform administrator role
	RoleAdmin Role = "admin"
	// RoleAssociationManager manages a condominium association
	RoleAssociationManager Role = "association_manager"
	// RoleResident is a regular unit resident
	RoleResident Role = "resident"
)

// ParseRole maps a wire label onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleAssociationManager, RoleResident:
		return Role(s), true
	default:
		return "", false
	}
}

// String returns the wire label of the role.
func (r Role) String() string {
	return string(r)
}

// User is the identity record of the logged-in account.
type User struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Phone  string `json:"phone,omitempty"`
	CPF    string `json:"cpf,omitempty"`
	Active bool   `json:"active"`
}

// TenantCandidate is one entry of the selection list the portal returns
// when a login is ambiguous (the account belongs to several tenants).
// Candidates are transient: they are never persisted, only handed to the
// caller so the user can pick one.
type TenantCandidate struct {
	TenantID   uint   `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Role       Role   `json:"role"`
}

// RegisterRequest is the profile payload for creating a new orphan identity.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	CPF      string `json:"cpf,omitempty"`
}

// LoginResult is what a login attempt produced: either an installed token
// (session established) or a candidate list awaiting tenant selection.
type LoginResult struct {
	Token      string
	User       *User
	Candidates []TenantCandidate
}

// PendingSelection reports whether the portal withheld the token because
// the account belongs to multiple tenants. The session stays anonymous
// until the user picks one and logs in against it.
func (r *LoginResult) PendingSelection() bool {
	return r.Token == "" && len(r.Candidates) > 0
}

// State is the conceptual session state, derived from the store fields.
type State int

const (
	// StateAnonymous means no token and no user
	StateAnonymous State = iota
	// StateOrphan means authenticated but not scoped to any tenant
	StateOrphan
	// StateTenanted means authenticated with an active tenant and role
	StateTenanted
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case StateOrphan:
		return "authenticated (no active tenant)"
	case StateTenanted:
		return "authenticated"
	default:
		return "anonymous"
	}
}
