// Package guard holds the access predicates that gate portal surfaces by
// session state. Guards are pure: they read the session and return a
// decision, they never mutate anything or talk to the network.
package guard

import (
	"github.com/arturbaldoramos/habitta-cli/internal/session"
)

// Well-known destinations a denial redirects to.
const (
	LoginRoute           = "/login"
	DashboardRoute       = "/dashboard"
	TenantSelectionRoute = "/my-tenants"
	UnauthorizedRoute    = "/unauthorized"
)

// Session is the read-only view a guard needs. *session.Service satisfies it.
type Session interface {
	IsAuthenticated() bool
	HasActiveTenant() bool
	HasAnyRole(roles ...session.Role) bool
}

// Decision is the outcome of evaluating a guard.
type Decision struct {
	// Allowed reports whether access is granted.
	Allowed bool
	// Redirect is where a denied caller should be sent.
	Redirect string
	// ReturnTo, when set, is the destination to come back to after the
	// redirect resolves (e.g. after logging in).
	ReturnTo string
}

// allow is the shared granted decision.
func allow() Decision {
	return Decision{Allowed: true}
}

// deny builds a denial pointing at redirect.
func deny(redirect string) Decision {
	return Decision{Redirect: redirect}
}

// Guard evaluates one access rule against the session for a target route.
type Guard func(s Session, target string) Decision

// RequireAuth admits authenticated sessions. Anonymous callers are sent
// to login with the target recorded so they can come back.
func RequireAuth() Guard {
	return func(s Session, target string) Decision {
		if s.IsAuthenticated() {
			return allow()
		}
		d := deny(LoginRoute)
		d.ReturnTo = target
		return d
	}
}

// RequireAnonymous admits only anonymous sessions. Logged-in callers
// have no business on login or register surfaces and go to the dashboard.
func RequireAnonymous() Guard {
	return func(s Session, target string) Decision {
		if !s.IsAuthenticated() {
			return allow()
		}
		return deny(DashboardRoute)
	}
}

// RequireTenant admits sessions with an active tenant. Authenticated
// orphans are sent to tenant selection, not login; their identity is
// fine, only the scope is missing.
func RequireTenant() Guard {
	return func(s Session, target string) Decision {
		if !s.IsAuthenticated() {
			d := deny(LoginRoute)
			d.ReturnTo = target
			return d
		}
		if s.HasActiveTenant() {
			return allow()
		}
		return deny(TenantSelectionRoute)
	}
}

// RequireOrphan admits authenticated sessions without an active tenant.
// Used for the tenant selection surface itself.
func RequireOrphan() Guard {
	return func(s Session, target string) Decision {
		if !s.IsAuthenticated() {
			d := deny(LoginRoute)
			d.ReturnTo = target
			return d
		}
		if s.HasActiveTenant() {
			return deny(DashboardRoute)
		}
		return allow()
	}
}

// RequireRole admits sessions whose active role is one of roles. Roles
// are tenant-scoped, so an orphan session fails the role check too; any
// role failure lands on the unauthorized page. Commands that should send
// orphans to tenant selection instead compose RequireTenant in front.
func RequireRole(roles ...session.Role) Guard {
	return func(s Session, target string) Decision {
		if !s.IsAuthenticated() {
			d := deny(LoginRoute)
			d.ReturnTo = target
			return d
		}
		if s.HasAnyRole(roles...) {
			return allow()
		}
		return deny(UnauthorizedRoute)
	}
}

// Chain composes guards by conjunction. Evaluation stops at the first
// denial, so a later guard never overrides an earlier redirect.
func Chain(guards ...Guard) Guard {
	return func(s Session, target string) Decision {
		for _, g := range guards {
			if d := g(s, target); !d.Allowed {
				return d
			}
		}
		return allow()
	}
}
