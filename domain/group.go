package domain

// Set holds a collection of user ids.
type Set map[string]struct{}

func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string) {
	s[id] = struct{}{}
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Group is a named roster of user ids. The owner is always a member.
// Members can only be added, never removed.
type Group struct {
	ID      string
	Name    string
	OwnerID string
	Members Set
}
