package state

import (
	"sync"
	"time"

	"chat-core/domain"
	"chat-core/errors"

	"github.com/google/uuid"
)

// callSession wraps one call behind its own lock so transitions on the same
// call id are linearized while different calls stay independent.
type callSession struct {
	mu   sync.Mutex
	call domain.VoiceCall
}

func (s *callSession) snapshot() domain.VoiceCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCall(s.call)
}

func cloneCall(call domain.VoiceCall) domain.VoiceCall {
	out := call
	out.Participants = make([]string, len(call.Participants))
	copy(out.Participants, call.Participants)
	return out
}

// CallRegistry holds every call session, live and terminal. Calls are never
// deleted; ended calls stay queryable.
type CallRegistry struct {
	users  *UserRegistry
	groups *GroupRegistry

	mu    sync.RWMutex
	calls map[string]*callSession
}

func NewCallRegistry(users *UserRegistry, groups *GroupRegistry) *CallRegistry {
	return &CallRegistry{users: users, groups: groups, calls: make(map[string]*callSession)}
}

func (r *CallRegistry) store(call domain.VoiceCall) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[call.ID] = &callSession{call: call}
	return call.ID
}

func (r *CallRegistry) session(callID string) (*callSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.calls[callID]
	return s, ok
}

// Get returns a snapshot of one call, whatever its state.
func (r *CallRegistry) Get(callID string) (domain.VoiceCall, error) {
	s, ok := r.session(callID)
	if !ok {
		return domain.VoiceCall{}, errors.ErrCallNotFound
	}
	return s.snapshot(), nil
}

// StartDirect creates a one-to-one call in state Calling. The participant
// pair is fixed for the life of the call.
func (r *CallRegistry) StartDirect(callerID, recipientID string) (string, error) {
	caller, ok := r.users.ByID(callerID)
	if !ok {
		return "", errors.ErrUserNotFound
	}
	if !r.users.Exists(recipientID) {
		return "", errors.ErrUserNotFound
	}

	return r.store(domain.VoiceCall{
		ID:           uuid.NewString(),
		CallerID:     callerID,
		CallerName:   caller.DisplayName,
		TargetID:     recipientID,
		StartedAt:    time.Now().UTC(),
		Status:       domain.CallCalling,
		Kind:         domain.ChatDirect,
		Participants: []string{callerID, recipientID},
	}), nil
}

// AnswerDirect moves a call to Active. Only the recipient may answer.
// Answering an already terminal call changes nothing: a finished call is
// never resurrected.
func (r *CallRegistry) AnswerDirect(callID, userID string) error {
	return r.directTransition(callID, func(call *domain.VoiceCall) error {
		if userID != call.TargetID {
			return errors.ErrNotCallRecipient
		}
		if call.Status.Terminal() {
			return nil
		}
		call.Status = domain.CallActive
		return nil
	})
}

// RejectDirect declines a call. Only the recipient may reject.
func (r *CallRegistry) RejectDirect(callID, userID string) error {
	return r.directTransition(callID, func(call *domain.VoiceCall) error {
		if userID != call.TargetID {
			return errors.ErrNotCallRecipient
		}
		if call.Status.Terminal() {
			return nil
		}
		call.Status = domain.CallRejected
		call.EndedAt = time.Now().UTC()
		return nil
	})
}

// EndDirect hangs up from any state, terminal ones included; repeat end
// requests are tolerated. Either side of the call may end it.
func (r *CallRegistry) EndDirect(callID, userID string) error {
	return r.directTransition(callID, func(call *domain.VoiceCall) error {
		if userID != call.CallerID && userID != call.TargetID {
			return errors.ErrNotCallParticipant
		}
		call.Status = domain.CallEnded
		call.EndedAt = time.Now().UTC()
		return nil
	})
}

func (r *CallRegistry) directTransition(callID string, transition func(*domain.VoiceCall) error) error {
	s, ok := r.session(callID)
	if !ok {
		return errors.ErrCallNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.call.Kind != domain.ChatDirect {
		return errors.ErrCallNotFound
	}
	return transition(&s.call)
}

// ActiveCallsFor lists the non-terminal direct calls the user is on either
// side of.
func (r *CallRegistry) ActiveCallsFor(userID string) []domain.VoiceCall {
	var out []domain.VoiceCall
	for _, s := range r.sessions() {
		call := s.snapshot()
		if call.Kind != domain.ChatDirect {
			continue
		}
		if call.CallerID != userID && call.TargetID != userID {
			continue
		}
		switch call.Status {
		case domain.CallCalling, domain.CallRinging, domain.CallActive:
			out = append(out, call)
		}
	}
	return out
}

// StartGroup opens a group call. Unlike a direct call it begins Active
// immediately, with the initiator as the only participant; members join
// and leave over its lifetime.
func (r *CallRegistry) StartGroup(callerID, groupID string) (string, error) {
	caller, ok := r.users.ByID(callerID)
	if !ok {
		return "", errors.ErrUserNotFound
	}
	group, ok := r.groups.Get(groupID)
	if !ok {
		return "", errors.ErrGroupNotFound
	}
	if !group.Members.Contains(callerID) {
		return "", errors.ErrNotGroupMember
	}

	return r.store(domain.VoiceCall{
		ID:           uuid.NewString(),
		CallerID:     callerID,
		CallerName:   caller.DisplayName,
		TargetID:     groupID,
		StartedAt:    time.Now().UTC(),
		Status:       domain.CallActive,
		Kind:         domain.ChatGroup,
		Participants: []string{callerID},
	}), nil
}

// JoinGroup adds a member of the call's group to the participant list.
// Joining twice is a no-op.
func (r *CallRegistry) JoinGroup(callID, userID string) error {
	return r.groupTransition(callID, func(call *domain.VoiceCall) error {
		if !r.groups.IsMember(call.TargetID, userID) {
			return errors.ErrNotGroupMember
		}
		for _, id := range call.Participants {
			if id == userID {
				return nil
			}
		}
		call.Participants = append(call.Participants, userID)
		return nil
	})
}

// LeaveGroup drops a participant; leaving when absent is a no-op. When the
// last participant leaves, the call ends on its own — the only transition
// not driven by an explicit end request.
func (r *CallRegistry) LeaveGroup(callID, userID string) error {
	return r.groupTransition(callID, func(call *domain.VoiceCall) error {
		for i, id := range call.Participants {
			if id == userID {
				call.Participants = append(call.Participants[:i], call.Participants[i+1:]...)
				break
			}
		}
		if len(call.Participants) == 0 && !call.Status.Terminal() {
			call.Status = domain.CallEnded
			call.EndedAt = time.Now().UTC()
		}
		return nil
	})
}

// EndGroup force-ends the call regardless of who is still on it. Only the
// initiator may do this.
func (r *CallRegistry) EndGroup(callID, userID string) error {
	return r.groupTransition(callID, func(call *domain.VoiceCall) error {
		if userID != call.CallerID {
			return errors.ErrNotCallInitiator
		}
		call.Status = domain.CallEnded
		call.EndedAt = time.Now().UTC()
		return nil
	})
}

func (r *CallRegistry) groupTransition(callID string, transition func(*domain.VoiceCall) error) error {
	s, ok := r.session(callID)
	if !ok {
		return errors.ErrCallNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.call.Kind != domain.ChatGroup {
		return errors.ErrCallNotFound
	}
	return transition(&s.call)
}

// ActiveGroupCalls lists the Active calls targeting one group.
func (r *CallRegistry) ActiveGroupCalls(groupID string) []domain.VoiceCall {
	var out []domain.VoiceCall
	for _, s := range r.sessions() {
		call := s.snapshot()
		if call.Kind == domain.ChatGroup && call.TargetID == groupID && call.Status == domain.CallActive {
			out = append(out, call)
		}
	}
	return out
}

func (r *CallRegistry) sessions() []*callSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*callSession, 0, len(r.calls))
	for _, s := range r.calls {
		out = append(out, s)
	}
	return out
}
