package session

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/arturbaldoramos/habitta-cli/internal/errors"
	"github.com/arturbaldoramos/habitta-cli/internal/storage"
)

// store holds the four observable session fields and mirrors every change
// into durable storage as one batch, so a reader never sees memory and
// disk disagree. It is unexported on purpose: the Service is the only
// writer, everything else reads through the Service.
type store struct {
	mu sync.RWMutex

	backend *storage.Store

	token          string
	user           *User
	activeTenantID *uint
	activeRole     Role
}

func newStore(backend *storage.Store) *store {
	return &store{backend: backend}
}

// setSession installs a complete session in one atomic update. tenantID
// and role must come from the token's claims — they are derived state.
func (s *store) setSession(token string, user *User, tenantID *uint, role Role) error {
	userRaw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageWrite, "failed to serialize user record", err)
	}
	userValue := string(userRaw)

	changes := map[string]*string{
		storage.KeyToken: &token,
		storage.KeyUser:  &userValue,
	}
	if tenantID != nil {
		tenantValue := strconv.FormatUint(uint64(*tenantID), 10)
		roleValue := role.String()
		changes[storage.KeyActiveTenant] = &tenantValue
		changes[storage.KeyActiveRole] = &roleValue
	} else {
		changes[storage.KeyActiveTenant] = nil
		changes[storage.KeyActiveRole] = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Apply(changes); err != nil {
		return errors.Wrap(errors.ErrCodeStorageWrite, "failed to persist session", err)
	}

	s.token = token
	s.user = user
	s.activeTenantID = tenantID
	s.activeRole = role
	return nil
}

// setUser replaces only the identity record, e.g. after a profile refresh.
func (s *store) setUser(user *User) error {
	userRaw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageWrite, "failed to serialize user record", err)
	}
	userValue := string(userRaw)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Apply(map[string]*string{storage.KeyUser: &userValue}); err != nil {
		return errors.Wrap(errors.ErrCodeStorageWrite, "failed to persist user record", err)
	}

	s.user = user
	return nil
}

// clear empties all four fields and deletes their storage keys. Safe to
// call on an already-empty store.
func (s *store) clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.backend.Apply(map[string]*string{
		storage.KeyToken:        nil,
		storage.KeyUser:         nil,
		storage.KeyActiveTenant: nil,
		storage.KeyActiveRole:   nil,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageWrite, "failed to clear session storage", err)
	}

	s.token = ""
	s.user = nil
	s.activeTenantID = nil
	s.activeRole = ""
	return nil
}

func (s *store) getToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *store) getUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *store) getActiveTenant() (uint, Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeTenantID == nil {
		return 0, "", false
	}
	return *s.activeTenantID, s.activeRole, true
}

func (s *store) isAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *store) hasActiveTenant() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTenantID != nil
}
