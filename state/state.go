// Package state is the in-memory authority for all chat data: registered
// users, group rosters, conversation logs, call sessions, and pending
// signaling payloads. Every store is safe for concurrent use by independent
// request handlers; nothing here touches the network or disk, and a process
// restart loses all state by design.
package state

// ChatState bundles the five sub-stores behind one constructor so callers
// get a consistently wired set of registries.
type ChatState struct {
	Users         *UserRegistry
	Groups        *GroupRegistry
	Conversations *ConversationLog
	Calls         *CallRegistry
	Signals       *SignalMailbox
}

func New() *ChatState {
	users := NewUserRegistry()
	groups := NewGroupRegistry(users)
	return &ChatState{
		Users:         users,
		Groups:        groups,
		Conversations: NewConversationLog(users, groups),
		Calls:         NewCallRegistry(users, groups),
		Signals:       NewSignalMailbox(),
	}
}
