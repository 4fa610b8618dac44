package state

import (
	"sync"

	"chat-core/domain"
	"chat-core/errors"

	"github.com/google/uuid"
)

// GroupRegistry holds group rosters. Membership only grows; there is no
// removal operation. Existence checks against the user registry are
// read-only and users are never deleted, so a check can never go stale.
type GroupRegistry struct {
	mu     sync.RWMutex
	users  *UserRegistry
	groups map[string]*domain.Group
}

func NewGroupRegistry(users *UserRegistry) *GroupRegistry {
	return &GroupRegistry{users: users, groups: make(map[string]*domain.Group)}
}

// Create stores a new group owned by ownerID and returns its id. The owner
// is always part of the roster, whether or not memberIDs lists them.
// Member ids other than the owner are accepted without an existence check:
// the roster is deliberately permissive about unknown users.
func (r *GroupRegistry) Create(ownerID, name string, memberIDs []string) (string, error) {
	if !r.users.Exists(ownerID) {
		return "", errors.ErrUserNotFound
	}

	members := make(domain.Set, len(memberIDs)+1)
	for _, id := range memberIDs {
		members.Add(id)
	}
	members.Add(ownerID)

	group := &domain.Group{
		ID:      uuid.NewString(),
		Name:    name,
		OwnerID: ownerID,
		Members: members,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[group.ID] = group
	return group.ID, nil
}

// AddMember adds a registered user to the roster. Adding an existing
// member is a no-op.
func (r *GroupRegistry) AddMember(groupID, userID string) error {
	if !r.users.Exists(userID) {
		return errors.ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	group, ok := r.groups[groupID]
	if !ok {
		return errors.ErrGroupNotFound
	}
	group.Members.Add(userID)
	return nil
}

func (r *GroupRegistry) IsMember(groupID, userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group, ok := r.groups[groupID]
	return ok && group.Members.Contains(userID)
}

// Get returns a copy of the group so callers cannot mutate the live roster.
func (r *GroupRegistry) Get(groupID string) (domain.Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group, ok := r.groups[groupID]
	if !ok {
		return domain.Group{}, false
	}
	snapshot := *group
	snapshot.Members = group.Members.Clone()
	return snapshot, true
}

// MemberOf returns a snapshot of every group the user belongs to.
func (r *GroupRegistry) MemberOf(userID string) []domain.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Group
	for _, group := range r.groups {
		if group.Members.Contains(userID) {
			snapshot := *group
			snapshot.Members = group.Members.Clone()
			out = append(out, snapshot)
		}
	}
	return out
}
