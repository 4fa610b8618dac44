package domain

import "time"

// ChatSummary is one conversation entry on a user's chat list: who the
// conversation is with and what was last said. A zero LastMessageAt marks a
// group that has no messages yet; it sorts after every dated conversation.
type ChatSummary struct {
	ChatID        string
	ChatName      string
	LastMessage   string
	LastMessageAt time.Time
	Kind          ChatKind
}
