package cmd

import (
	"github.com/arturbaldoramos/habitta-cli/internal/errors"
	"github.com/arturbaldoramos/habitta-cli/internal/guard"
)

// requireAccess evaluates g against the current session before a command
// runs. A denial becomes a typed error whose suggestion mirrors the
// redirect the portal web client would perform.
func (a *app) requireAccess(g guard.Guard, target string) error {
	d := g(a.session, target)
	if d.Allowed {
		return nil
	}

	switch d.Redirect {
	case guard.LoginRoute:
		return errors.New(errors.ErrCodeNotAuthenticated, "you are not logged in").
			WithSuggestion("Log in: habitta auth login")
	case guard.DashboardRoute:
		// RequireAnonymous and RequireOrphan both send the caller to the
		// dashboard; which rule fired follows from the session state.
		if a.session.HasActiveTenant() {
			return errors.New(errors.ErrCodeActiveTenantSet, "you already belong to a condominium").
				WithSuggestion("Switch context instead: habitta tenant switch <id>").
				WithSuggestion("See your memberships: habitta tenant list")
		}
		return errors.New(errors.ErrCodeAlreadyLoggedIn, "you are already logged in").
			WithSuggestion("Log out first: habitta auth logout")
	case guard.TenantSelectionRoute:
		return errors.New(errors.ErrCodeNoActiveTenant, "no active condominium selected").
			WithSuggestion("List your condominiums: habitta tenant list").
			WithSuggestion("Select one: habitta tenant switch <id>")
	case guard.UnauthorizedRoute:
		return errors.New(errors.ErrCodeUnauthorized, "your role does not permit this command").
			WithSuggestion("Ask a condominium manager to grant you access")
	default:
		return errors.New(errors.ErrCodeUnauthorized, "this command is not available right now")
	}
}
