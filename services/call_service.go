package services

import (
	"chat-core/domain"
	"chat-core/observability"
	"chat-core/state"
)

type ICallService interface {
	StartDirectCall(callerID, recipientID string) (string, error)
	AnswerDirectCall(callID, userID string) error
	RejectDirectCall(callID, userID string) error
	EndDirectCall(callID, userID string) error
	ActiveCallsFor(userID string) []domain.VoiceCall

	StartGroupCall(callerID, groupID string) (string, error)
	JoinGroupCall(callID, userID string) error
	LeaveGroupCall(callID, userID string) error
	EndGroupCall(callID, userID string) error
	ActiveGroupCalls(groupID string) []domain.VoiceCall

	CallStatus(callID string) (domain.VoiceCall, error)
}

type CallService struct {
	state *state.ChatState
	stats *observability.StatsManager
}

func NewCallService(chatState *state.ChatState, stats *observability.StatsManager) *CallService {
	return &CallService{state: chatState, stats: stats}
}

func (s *CallService) StartDirectCall(callerID, recipientID string) (string, error) {
	callID, err := s.state.Calls.StartDirect(callerID, recipientID)
	if err == nil {
		s.stats.IncrCallsStarted()
	}
	return callID, err
}

func (s *CallService) AnswerDirectCall(callID, userID string) error {
	return s.state.Calls.AnswerDirect(callID, userID)
}

func (s *CallService) RejectDirectCall(callID, userID string) error {
	return s.state.Calls.RejectDirect(callID, userID)
}

func (s *CallService) EndDirectCall(callID, userID string) error {
	return s.state.Calls.EndDirect(callID, userID)
}

func (s *CallService) ActiveCallsFor(userID string) []domain.VoiceCall {
	return s.state.Calls.ActiveCallsFor(userID)
}

func (s *CallService) StartGroupCall(callerID, groupID string) (string, error) {
	callID, err := s.state.Calls.StartGroup(callerID, groupID)
	if err == nil {
		s.stats.IncrCallsStarted()
	}
	return callID, err
}

func (s *CallService) JoinGroupCall(callID, userID string) error {
	return s.state.Calls.JoinGroup(callID, userID)
}

func (s *CallService) LeaveGroupCall(callID, userID string) error {
	return s.state.Calls.LeaveGroup(callID, userID)
}

func (s *CallService) EndGroupCall(callID, userID string) error {
	return s.state.Calls.EndGroup(callID, userID)
}

func (s *CallService) ActiveGroupCalls(groupID string) []domain.VoiceCall {
	return s.state.Calls.ActiveGroupCalls(groupID)
}

// CallStatus serves the clients' polling loop: one call by id, in whatever
// state it currently is.
func (s *CallService) CallStatus(callID string) (domain.VoiceCall, error) {
	return s.state.Calls.Get(callID)
}
