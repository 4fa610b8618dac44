package state

import (
	"strings"
	"sync"

	"chat-core/domain"
)

// UserRegistry holds all registered profiles. Profiles are write-once:
// there is no update or delete.
type UserRegistry struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRegistry() *UserRegistry {
	return &UserRegistry{users: make(map[string]domain.User)}
}

// Register inserts a new profile and reports whether it won the id.
// The check and the insert happen under one lock, so for any number of
// concurrent registrations of the same id exactly one caller sees true.
func (r *UserRegistry) Register(id, displayName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; ok {
		return false
	}
	r.users[id] = domain.User{ID: id, DisplayName: displayName}
	return true
}

func (r *UserRegistry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok
}

func (r *UserRegistry) ByID(id string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	return user, ok
}

// ByDisplayName finds a user by exact, case-insensitive display name.
// Display names are not unique; when several users share one, map
// iteration picks an arbitrary match.
func (r *UserRegistry) ByDisplayName(name string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.DisplayName, name) {
			return user, true
		}
	}
	return domain.User{}, false
}

// All returns a snapshot of every registered profile, in no particular order.
func (r *UserRegistry) All() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	return out
}
