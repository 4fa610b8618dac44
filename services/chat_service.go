// Package services exposes the application operations consumed by the
// transport layer. Services stay thin: they delegate to the state stores
// and keep the runtime counters current.
package services

import (
	"chat-core/domain"
	"chat-core/observability"
	"chat-core/state"
)

type IChatService interface {
	RegisterUser(id, displayName string) bool
	UserExists(id string) bool
	FindUserByID(id string) (domain.User, bool)
	FindUserByName(name string) (domain.User, bool)
	AllUsers() []domain.User
	SendDirectMessage(fromID, toID, content string, payload domain.PayloadKind, audioSeconds int) (domain.Message, error)
	DirectMessages(userID, otherUserID string) []domain.Message
	DirectSummaries(userID string) []domain.ChatSummary
}

type ChatService struct {
	state *state.ChatState
	stats *observability.StatsManager
}

func NewChatService(chatState *state.ChatState, stats *observability.StatsManager) *ChatService {
	return &ChatService{state: chatState, stats: stats}
}

// RegisterUser reports whether the id was free. A duplicate id is an
// expected outcome, not a failure.
func (s *ChatService) RegisterUser(id, displayName string) bool {
	registered := s.state.Users.Register(id, displayName)
	if registered {
		s.stats.IncrUsersRegistered()
	}
	return registered
}

func (s *ChatService) UserExists(id string) bool {
	return s.state.Users.Exists(id)
}

func (s *ChatService) FindUserByID(id string) (domain.User, bool) {
	return s.state.Users.ByID(id)
}

func (s *ChatService) FindUserByName(name string) (domain.User, bool) {
	return s.state.Users.ByDisplayName(name)
}

func (s *ChatService) AllUsers() []domain.User {
	return s.state.Users.All()
}

func (s *ChatService) SendDirectMessage(fromID, toID, content string, payload domain.PayloadKind, audioSeconds int) (domain.Message, error) {
	msg, err := s.state.Conversations.AppendDirect(fromID, toID, content, payload, audioSeconds)
	if err == nil {
		s.stats.IncrMessagesAppended()
	}
	return msg, err
}

func (s *ChatService) DirectMessages(userID, otherUserID string) []domain.Message {
	return s.state.Conversations.DirectMessages(userID, otherUserID)
}

func (s *ChatService) DirectSummaries(userID string) []domain.ChatSummary {
	return s.state.Conversations.DirectSummaries(userID)
}
