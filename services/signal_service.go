package services

import (
	"chat-core/domain"
	"chat-core/observability"
	"chat-core/state"
)

type ISignalService interface {
	SendSignal(callID, fromUserID, toUserID string, signalType domain.SignalType, payload string) domain.WebRTCSignal
	PendingSignals(userID string) []domain.WebRTCSignal
	AcknowledgeSignal(callID, userID, signalID string)
}

type SignalService struct {
	state *state.ChatState
	stats *observability.StatsManager
}

func NewSignalService(chatState *state.ChatState, stats *observability.StatsManager) *SignalService {
	return &SignalService{state: chatState, stats: stats}
}

func (s *SignalService) SendSignal(callID, fromUserID, toUserID string, signalType domain.SignalType, payload string) domain.WebRTCSignal {
	signal := s.state.Signals.Send(callID, fromUserID, toUserID, signalType, payload)
	s.stats.IncrSignalsRelayed()
	return signal
}

func (s *SignalService) PendingSignals(userID string) []domain.WebRTCSignal {
	return s.state.Signals.Pending(userID)
}

func (s *SignalService) AcknowledgeSignal(callID, userID, signalID string) {
	s.state.Signals.Acknowledge(callID, userID, signalID)
}
