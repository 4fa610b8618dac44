package state

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"chat-core/domain"
	"chat-core/errors"
)

// AudioPlaceholder is what an audio message shows as on a chat list; the
// raw base64 payload never surfaces in summaries.
const AudioPlaceholder = "Voice message"

// sequence is one append-only message log with its own lock, so appends to
// different conversations never contend with each other.
type sequence struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (s *sequence) snapshot() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *sequence) last() (domain.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return domain.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// ConversationLog holds every direct and group message sequence. Direct
// sequences are keyed by the canonical user pair, group sequences by group
// id. Message ids come from one process-wide counter, so they are strictly
// increasing in creation order across all conversations.
type ConversationLog struct {
	users  *UserRegistry
	groups *GroupRegistry

	mu     sync.RWMutex
	direct map[string]*sequence
	group  map[string]*sequence

	nextID atomic.Int64
}

func NewConversationLog(users *UserRegistry, groups *GroupRegistry) *ConversationLog {
	return &ConversationLog{
		users:  users,
		groups: groups,
		direct: make(map[string]*sequence),
		group:  make(map[string]*sequence),
	}
}

// pairKey canonicalizes an unordered user pair so (A,B) and (B,A) address
// the same conversation.
func pairKey(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// seq returns the sequence at key, creating it on first use.
func (l *ConversationLog) seq(store map[string]*sequence, key string) *sequence {
	l.mu.RLock()
	s, ok := store[key]
	l.mu.RUnlock()
	if ok {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok = store[key]; ok {
		return s
	}
	s = &sequence{}
	store[key] = s
	return s
}

// append allocates the message id and timestamp under the sequence lock, so
// acceptance order, id order, and slice order always agree within one key.
func (l *ConversationLog) append(s *sequence, msg domain.Message) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = strconv.FormatInt(l.nextID.Add(1), 10)
	msg.Timestamp = time.Now().UTC()
	s.messages = append(s.messages, msg)
	return msg
}

// AppendDirect records a message between two registered users and returns
// it with its id and timestamp filled in.
func (l *ConversationLog) AppendDirect(fromID, toID, content string, payload domain.PayloadKind, audioSeconds int) (domain.Message, error) {
	sender, ok := l.users.ByID(fromID)
	if !ok {
		return domain.Message{}, errors.ErrUserNotFound
	}
	if !l.users.Exists(toID) {
		return domain.Message{}, errors.ErrUserNotFound
	}

	msg := domain.Message{
		SenderID:     fromID,
		SenderName:   sender.DisplayName,
		RecipientID:  toID,
		Content:      content,
		Kind:         domain.ChatDirect,
		Payload:      payload,
		AudioSeconds: audioSeconds,
	}
	return l.append(l.seq(l.direct, pairKey(fromID, toID)), msg), nil
}

// AppendGroup records a message to a group the sender belongs to.
func (l *ConversationLog) AppendGroup(fromID, groupID, content string, payload domain.PayloadKind, audioSeconds int) (domain.Message, error) {
	group, ok := l.groups.Get(groupID)
	if !ok {
		return domain.Message{}, errors.ErrGroupNotFound
	}
	if !group.Members.Contains(fromID) {
		return domain.Message{}, errors.ErrNotGroupMember
	}

	// The sender may be an unvalidated roster entry; fall back to the id.
	senderName := fromID
	if sender, ok := l.users.ByID(fromID); ok {
		senderName = sender.DisplayName
	}

	msg := domain.Message{
		SenderID:     fromID,
		SenderName:   senderName,
		RecipientID:  groupID,
		Content:      content,
		Kind:         domain.ChatGroup,
		Payload:      payload,
		AudioSeconds: audioSeconds,
	}
	return l.append(l.seq(l.group, groupID), msg), nil
}

// DirectMessages returns a full snapshot of the conversation between two
// users, oldest first. An unknown pair yields an empty slice.
func (l *ConversationLog) DirectMessages(userID, otherUserID string) []domain.Message {
	l.mu.RLock()
	s, ok := l.direct[pairKey(userID, otherUserID)]
	l.mu.RUnlock()
	if !ok {
		return []domain.Message{}
	}
	return s.snapshot()
}

// GroupMessages returns a full snapshot of a group's log, restricted to
// members.
func (l *ConversationLog) GroupMessages(userID, groupID string) ([]domain.Message, error) {
	group, ok := l.groups.Get(groupID)
	if !ok {
		return nil, errors.ErrGroupNotFound
	}
	if !group.Members.Contains(userID) {
		return nil, errors.ErrNotGroupMember
	}

	l.mu.RLock()
	s, found := l.group[groupID]
	l.mu.RUnlock()
	if !found {
		return []domain.Message{}, nil
	}
	return s.snapshot(), nil
}

// DirectSummaries lists the user's direct conversations, most recently
// active first. A conversation exists only once its first message is
// appended, so there is never an empty entry.
func (l *ConversationLog) DirectSummaries(userID string) []domain.ChatSummary {
	l.mu.RLock()
	keyed := make(map[string]*sequence, len(l.direct))
	for key, s := range l.direct {
		keyed[key] = s
	}
	l.mu.RUnlock()

	var summaries []domain.ChatSummary
	for key, s := range keyed {
		otherID, ok := otherParty(key, userID)
		if !ok {
			continue
		}
		lastMsg, ok := s.last()
		if !ok {
			continue
		}

		chatName := otherID
		if other, found := l.users.ByID(otherID); found {
			chatName = other.DisplayName
		}
		summaries = append(summaries, domain.ChatSummary{
			ChatID:        otherID,
			ChatName:      chatName,
			LastMessage:   displayText(lastMsg),
			LastMessageAt: lastMsg.Timestamp,
			Kind:          domain.ChatDirect,
		})
	}
	sortSummaries(summaries)
	return summaries
}

// GroupSummaries lists every group the user is a member of, including
// groups with no messages yet; those carry an empty last message and a zero
// timestamp, which puts them after all dated conversations.
func (l *ConversationLog) GroupSummaries(userID string) []domain.ChatSummary {
	var summaries []domain.ChatSummary
	for _, group := range l.groups.MemberOf(userID) {
		summary := domain.ChatSummary{
			ChatID:   group.ID,
			ChatName: group.Name,
			Kind:     domain.ChatGroup,
		}

		l.mu.RLock()
		s, ok := l.group[group.ID]
		l.mu.RUnlock()
		if ok {
			if lastMsg, found := s.last(); found {
				summary.LastMessage = lastMsg.SenderName + ": " + displayText(lastMsg)
				summary.LastMessageAt = lastMsg.Timestamp
			}
		}
		summaries = append(summaries, summary)
	}
	sortSummaries(summaries)
	return summaries
}

// otherParty extracts the opposite participant from a canonical pair key,
// or reports that the user is not part of the pair.
func otherParty(key, userID string) (string, bool) {
	userA, userB, ok := strings.Cut(key, ":")
	if !ok {
		return "", false
	}
	switch userID {
	case userA:
		return userB, true
	case userB:
		return userA, true
	default:
		return "", false
	}
}

func displayText(msg domain.Message) string {
	if msg.Payload == domain.PayloadAudio {
		return AudioPlaceholder
	}
	return msg.Content
}

func sortSummaries(summaries []domain.ChatSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastMessageAt.After(summaries[j].LastMessageAt)
	})
}
