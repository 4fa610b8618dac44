package domain

import "time"

// ChatKind distinguishes one-to-one conversations from group conversations.
type ChatKind string

const (
	ChatDirect ChatKind = "direct"
	ChatGroup  ChatKind = "group"
)

// PayloadKind distinguishes text messages from recorded audio messages.
type PayloadKind string

const (
	PayloadText  PayloadKind = "text"
	PayloadAudio PayloadKind = "audio"
)

// Message represents an immutable chat event. SenderName is captured at
// send time and never re-read from the live user record.
type Message struct {
	ID           string // monotonic, process-wide unique
	SenderID     string
	SenderName   string
	RecipientID  string // a user id for direct messages, a group id for group messages
	Content      string // text, or a base64 audio blob
	Timestamp    time.Time
	Kind         ChatKind
	Payload      PayloadKind
	AudioSeconds int
}
