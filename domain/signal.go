package domain

// SignalType is the WebRTC negotiation payload kind.
type SignalType string

const (
	SignalOffer        SignalType = "offer"
	SignalAnswer       SignalType = "answer"
	SignalIceCandidate SignalType = "ice-candidate"
)

// WebRTCSignal is one pending signaling payload in a user's mailbox.
// Exactly one of SDP and Candidate is populated depending on Type.
// ID is assigned at enqueue time and is the handle clients acknowledge by.
type WebRTCSignal struct {
	ID         string
	CallID     string
	FromUserID string
	ToUserID   string
	Type       SignalType
	SDP        string
	Candidate  string
}
