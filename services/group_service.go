package services

import (
	"chat-core/domain"
	"chat-core/observability"
	"chat-core/state"
)

type IGroupService interface {
	CreateGroup(ownerID, name string, memberIDs []string) (string, error)
	AddUserToGroup(groupID, userID string) error
	GetGroup(groupID string) (domain.Group, bool)
	IsMember(groupID, userID string) bool
	SendGroupMessage(fromID, groupID, content string, payload domain.PayloadKind, audioSeconds int) (domain.Message, error)
	GroupMessages(userID, groupID string) ([]domain.Message, error)
	GroupSummaries(userID string) []domain.ChatSummary
}

type GroupService struct {
	state *state.ChatState
	stats *observability.StatsManager
}

func NewGroupService(chatState *state.ChatState, stats *observability.StatsManager) *GroupService {
	return &GroupService{state: chatState, stats: stats}
}

func (s *GroupService) CreateGroup(ownerID, name string, memberIDs []string) (string, error) {
	return s.state.Groups.Create(ownerID, name, memberIDs)
}

func (s *GroupService) AddUserToGroup(groupID, userID string) error {
	return s.state.Groups.AddMember(groupID, userID)
}

func (s *GroupService) GetGroup(groupID string) (domain.Group, bool) {
	return s.state.Groups.Get(groupID)
}

func (s *GroupService) IsMember(groupID, userID string) bool {
	return s.state.Groups.IsMember(groupID, userID)
}

func (s *GroupService) SendGroupMessage(fromID, groupID, content string, payload domain.PayloadKind, audioSeconds int) (domain.Message, error) {
	msg, err := s.state.Conversations.AppendGroup(fromID, groupID, content, payload, audioSeconds)
	if err == nil {
		s.stats.IncrMessagesAppended()
	}
	return msg, err
}

func (s *GroupService) GroupMessages(userID, groupID string) ([]domain.Message, error) {
	return s.state.Conversations.GroupMessages(userID, groupID)
}

func (s *GroupService) GroupSummaries(userID string) []domain.ChatSummary {
	return s.state.Conversations.GroupSummaries(userID)
}
