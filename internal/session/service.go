// Package session implements the client-side session and tenant-context
// state machine: who is logged in, which tenant the session is scoped to,
// and what role that scope grants. The session lives in memory, mirrors
// itself into durable storage on every change, and is rehydrated from
// storage at startup.
package session

import (
	"context"
	"encoding/json"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
	"github.com/arturbaldoramos/habitta-cli/internal/log"
	"github.com/arturbaldoramos/habitta-cli/internal/storage"
	"github.com/arturbaldoramos/habitta-cli/internal/token"
)

// API is the identity surface of the portal the service talks to.
// Implemented by the portal client; faked in tests.
type API interface {
	// Login returns either an issued token (orphan or single-tenant
	// account) or a tenant candidate list with no token (ambiguous).
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// LoginWithTenant re-authenticates against one specific tenant and
	// returns a token scoped to it.
	LoginWithTenant(ctx context.Context, email, password string, tenantID uint) (*LoginResult, error)

	// SwitchTenant exchanges the current token for one scoped to the
	// given tenant.
	SwitchTenant(ctx context.Context, tenantID uint) (string, error)

	// Register creates a new orphan identity. It does not log in.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// CurrentUser fetches a fresh copy of the identity record.
	CurrentUser(ctx context.Context) (*User, error)
}

// Service owns the session store and orchestrates every transition.
// Construct exactly one per process, Initialize it at startup, and pass
// it by reference to every consumer (guards, transport, commands).
type Service struct {
	store  *store
	codec  *token.Codec
	api    API
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCodec replaces the token codec, mainly to inject a mock clock.
func WithCodec(c *token.Codec) Option {
	return func(s *Service) { s.codec = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithAPI sets the portal API up front.
func WithAPI(api API) Option {
	return func(s *Service) { s.api = api }
}

// NewService creates the session service over the given storage backend.
func NewService(backend *storage.Store, opts ...Option) *Service {
	s := &Service{
		store: newStore(backend),
		codec: token.NewCodec(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.L()
	}
	return s
}

// BindAPI attaches the portal API after construction. The API client needs
// the service as its token source, so the two are wired in two steps.
func (s *Service) BindAPI(api API) {
	s.api = api
}

// Initialize rehydrates the session from durable storage. A missing,
// expired, or malformed token — or an unreadable stored user record —
// clears every key and leaves the session anonymous. Run once at startup.
func (s *Service) Initialize() error {
	tok, hasToken := s.store.backend.Get(storage.KeyToken)
	userRaw, hasUser := s.store.backend.Get(storage.KeyUser)

	if !hasToken || !hasUser {
		// Partial state is as good as none.
		return s.store.clear()
	}

	if !s.codec.Valid(tok) {
		s.logger.Debug("stored token expired or malformed, clearing session")
		return s.store.clear()
	}

	var user User
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		s.logger.Warn("stored user record is unreadable, clearing session")
		return s.store.clear()
	}

	claims, err := s.codec.Decode(tok)
	if err != nil {
		return s.store.clear()
	}

	tenantID, role := tenantScope(claims)
	if err := s.store.setSession(tok, &user, tenantID, role); err != nil {
		return err
	}

	s.logger.Debug("session restored",
		"user_id", user.ID,
		"state", s.State().String(),
	)
	return nil
}

// Login authenticates with email and password. When the account belongs
// to several tenants the portal withholds the token and the result carries
// the candidate list instead; the store stays anonymous until the user
// picks a tenant via LoginWithTenant. On any error the store is untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if res.PendingSelection() {
		s.logger.Debug("login pending tenant selection", "candidates", len(res.Candidates))
		return res, nil
	}

	if err := s.install(res.Token, res.User); err != nil {
		return nil, err
	}
	return res, nil
}

// LoginWithTenant authenticates against one specific tenant after an
// ambiguous Login. The returned token is bound to that tenant.
func (s *Service) LoginWithTenant(ctx context.Context, email, password string, tenantID uint) (*LoginResult, error) {
	res, err := s.api.LoginWithTenant(ctx, email, password, tenantID)
	if err != nil {
		return nil, err
	}

	if res.Token == "" {
		return nil, errors.New(errors.ErrCodeBadResponse, "portal returned no token for tenant login")
	}

	if err := s.install(res.Token, res.User); err != nil {
		return nil, err
	}
	return res, nil
}

// SwitchTenant exchanges the current token for one scoped to tenantID.
// Token, active tenant, and active role are replaced in one atomic store
// update; a failed call leaves the previous scope fully intact.
func (s *Service) SwitchTenant(ctx context.Context, tenantID uint) error {
	if !s.IsAuthenticated() {
		return errors.New(errors.ErrCodeNotAuthenticated, "not logged in").
			WithSuggestion("Log in first: habitta auth login")
	}

	newToken, err := s.api.SwitchTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	claims, err := s.codec.Decode(newToken)
	if err != nil {
		return err
	}

	scopeID, role := tenantScope(claims)
	user := s.store.getUser()
	if err := s.store.setSession(newToken, user, scopeID, role); err != nil {
		return err
	}

	s.logger.Debug("switched tenant", "tenant_id", tenantID, "role", role.String())
	return nil
}

// Logout clears the whole session and its storage keys. Idempotent: a
// second call on an anonymous session is a no-op. This is also the forced
// path the request gatekeeper takes on a 401.
func (s *Service) Logout() {
	if err := s.store.clear(); err != nil {
		s.logger.WithError(err).Warn("failed to clear session storage on logout")
		return
	}
	s.logger.Debug("session cleared")
}

// Register creates a new orphan identity. It does not establish a session;
// the caller must log in separately.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.api.Register(ctx, req)
}

// RefreshUser re-fetches the identity record for the current session and
// stores it. A 401 means the session is dead; the gatekeeper will already
// have forced a logout by the time the error reaches us.
func (s *Service) RefreshUser(ctx context.Context) (*User, error) {
	if !s.IsAuthenticated() {
		return nil, errors.New(errors.ErrCodeNotAuthenticated, "not logged in")
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.setUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// install decodes the issued token and writes token, user, and the
// claims-derived tenant scope as a single batch.
func (s *Service) install(tok string, user *User) error {
	if tok == "" || user == nil {
		return errors.New(errors.ErrCodeBadResponse, "portal returned an incomplete login payload")
	}

	claims, err := s.codec.Decode(tok)
	if err != nil {
		return err
	}

	tenantID, role := tenantScope(claims)
	if err := s.store.setSession(tok, user, tenantID, role); err != nil {
		return err
	}

	s.logger.Debug("session established",
		"user_id", user.ID,
		"state", s.State().String(),
	)
	return nil
}

// tenantScope derives the active tenant and role from token claims.
// Both are set together or not at all; an unknown role label downgrades
// the token to an orphan scope rather than storing a role the closed set
// does not contain.
func tenantScope(claims *token.Claims) (*uint, Role) {
	if claims.ActiveTenantID == nil {
		return nil, ""
	}
	role, ok := ParseRole(claims.ActiveRole)
	if !ok {
		return nil, ""
	}
	id := *claims.ActiveTenantID
	return &id, role
}

// Token returns the current session token, or empty when anonymous.
func (s *Service) Token() string {
	return s.store.getToken()
}

// CurrentUser returns a copy of the identity record, or nil.
func (s *Service) CurrentUser() *User {
	return s.store.getUser()
}

// ActiveTenant returns the active tenant id and role when the session is
// tenant-scoped.
func (s *Service) ActiveTenant() (uint, Role, bool) {
	return s.store.getActiveTenant()
}

// IsAuthenticated reports whether both token and user are present.
func (s *Service) IsAuthenticated() bool {
	return s.store.isAuthenticated()
}

// HasActiveTenant reports whether the session is scoped to a tenant.
func (s *Service) HasActiveTenant() bool {
	return s.store.hasActiveTenant()
}

// HasRole reports whether the active role equals r. Only the active
// tenant's role counts; there is no tenant-independent role.
func (s *Service) HasRole(r Role) bool {
	_, role, ok := s.store.getActiveTenant()
	return ok && role == r
}

// HasAnyRole reports whether the active role is one of roles.
func (s *Service) HasAnyRole(roles ...Role) bool {
	_, role, ok := s.store.getActiveTenant()
	if !ok {
		return false
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// State derives the conceptual session state.
func (s *Service) State() State {
	switch {
	case !s.IsAuthenticated():
		return StateAnonymous
	case s.HasActiveTenant():
		return StateTenanted
	default:
		return StateOrphan
	}
}
