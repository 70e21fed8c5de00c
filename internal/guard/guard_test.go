package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arturbaldoramos/habitta-cli/internal/session"
)

// fakeSession is a guard.Session with fixed answers.
type fakeSession struct {
	authenticated bool
	tenanted      bool
	role          session.Role
}

func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) HasActiveTenant() bool { return f.tenanted }
func (f fakeSession) HasAnyRole(roles ...session.Role) bool {
	if !f.tenanted {
		return false
	}
	for _, r := range roles {
		if r == f.role {
			return true
		}
	}
	return false
}

var (
	anonymous = fakeSession{}
	orphan    = fakeSession{authenticated: true}
	resident  = fakeSession{authenticated: true, tenanted: true, role: session.RoleResident}
	manager   = fakeSession{authenticated: true, tenanted: true, role: session.RoleAssociationManager}
)

func TestRequireAuth(t *testing.T) {
	d := RequireAuth()(anonymous, DashboardRoute)
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginRoute, d.Redirect)
	assert.Equal(t, DashboardRoute, d.ReturnTo, "target recorded for after login")

	assert.True(t, RequireAuth()(orphan, DashboardRoute).Allowed)
	assert.True(t, RequireAuth()(resident, DashboardRoute).Allowed)
}

func TestRequireAnonymous(t *testing.T) {
	assert.True(t, RequireAnonymous()(anonymous, LoginRoute).Allowed)

	d := RequireAnonymous()(resident, LoginRoute)
	assert.False(t, d.Allowed)
	assert.Equal(t, DashboardRoute, d.Redirect)
	assert.Empty(t, d.ReturnTo)
}

func TestRequireTenant(t *testing.T) {
	d := RequireTenant()(anonymous, DashboardRoute)
	assert.Equal(t, LoginRoute, d.Redirect)
	assert.Equal(t, DashboardRoute, d.ReturnTo)

	d = RequireTenant()(orphan, DashboardRoute)
	assert.False(t, d.Allowed)
	assert.Equal(t, TenantSelectionRoute, d.Redirect, "orphan needs scope, not credentials")

	assert.True(t, RequireTenant()(resident, DashboardRoute).Allowed)
}

func TestRequireOrphan(t *testing.T) {
	assert.Equal(t, LoginRoute, RequireOrphan()(anonymous, TenantSelectionRoute).Redirect)
	assert.True(t, RequireOrphan()(orphan, TenantSelectionRoute).Allowed)
	assert.Equal(t, DashboardRoute, RequireOrphan()(resident, TenantSelectionRoute).Redirect)
}

func TestRequireRole(t *testing.T) {
	g := RequireRole(session.RoleAdmin, session.RoleAssociationManager)

	assert.Equal(t, LoginRoute, g(anonymous, "/invites").Redirect)
	assert.Equal(t, UnauthorizedRoute, g(orphan, "/invites").Redirect, "roles are tenant-scoped; an orphan holds none")
	assert.Equal(t, UnauthorizedRoute, g(resident, "/invites").Redirect)
	assert.True(t, g(manager, "/invites").Allowed)
}

func TestRequireRoleBehindRequireTenant(t *testing.T) {
	// The composed chain commands actually use: an orphan stops at the
	// tenant guard and is redirected to selection, not unauthorized.
	g := Chain(RequireAuth(), RequireTenant(), RequireRole(session.RoleAssociationManager))

	assert.Equal(t, TenantSelectionRoute, g(orphan, "/invites").Redirect)
	assert.Equal(t, UnauthorizedRoute, g(resident, "/invites").Redirect)
	assert.True(t, g(manager, "/invites").Allowed)
}

func TestChainShortCircuits(t *testing.T) {
	// An orphan failing the tenant guard must land on tenant selection,
	// even though the auth guard ran first and passed.
	g := Chain(RequireAuth(), RequireTenant())

	d := g(orphan, DashboardRoute)
	assert.False(t, d.Allowed)
	assert.Equal(t, TenantSelectionRoute, d.Redirect)

	// The first denial wins: anonymous stops at the auth guard.
	d = g(anonymous, DashboardRoute)
	assert.Equal(t, LoginRoute, d.Redirect)
	assert.Equal(t, DashboardRoute, d.ReturnTo)

	assert.True(t, g(resident, DashboardRoute).Allowed)
}

func TestChainEmptyAllows(t *testing.T) {
	assert.True(t, Chain()(anonymous, DashboardRoute).Allowed)
}
