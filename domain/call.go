package domain

import "time"

// CallStatus is the lifecycle state of a voice call.
// Ringing is never set by the core itself; it is reserved for the
// signaling layer.
type CallStatus string

const (
	CallCalling  CallStatus = "calling"
	CallRinging  CallStatus = "ringing"
	CallActive   CallStatus = "active"
	CallRejected CallStatus = "rejected"
	CallEnded    CallStatus = "ended"
)

// Terminal reports whether no further transition changes call semantics.
func (s CallStatus) Terminal() bool {
	return s == CallRejected || s == CallEnded
}

// VoiceCall is a call session. TargetID is the recipient user id for a
// direct call and the group id for a group call. Terminal calls are kept
// and stay queryable.
type VoiceCall struct {
	ID           string
	CallerID     string
	CallerName   string // display name snapshot at call start
	TargetID     string
	StartedAt    time.Time
	EndedAt      time.Time // zero until the call reaches a terminal state
	Status       CallStatus
	Kind         ChatKind
	Participants []string // join order, no duplicates
}
