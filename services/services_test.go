package services

import (
	"log/slog"
	"testing"

	"chat-core/domain"
	"chat-core/observability"
	"chat-core/state"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ IChatService   = (*ChatService)(nil)
	_ IGroupService  = (*GroupService)(nil)
	_ ICallService   = (*CallService)(nil)
	_ ISignalService = (*SignalService)(nil)
)

func newServices(t *testing.T) (*ChatService, *GroupService, *CallService, *SignalService, *observability.StatsManager) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	stats := observability.NewStatsManager(log)
	chatState := state.New()
	return NewChatService(chatState, stats),
		NewGroupService(chatState, stats),
		NewCallService(chatState, stats),
		NewSignalService(chatState, stats),
		stats
}

func TestServices_StatsCounters(t *testing.T) {
	req := require.New(t)
	chat, groups, calls, signals, stats := newServices(t)

	// Given two users; a duplicate registration must not count
	req.True(chat.RegisterUser("u1", "Alice"))
	req.True(chat.RegisterUser("u2", "Bob"))
	req.False(chat.RegisterUser("u1", "Impostor"))

	// And a message, a call, and a signal
	_, err := chat.SendDirectMessage("u1", "u2", "hi", domain.PayloadText, 0)
	req.NoError(err)
	_, err = chat.SendDirectMessage("u1", "ghost", "hi", domain.PayloadText, 0)
	req.Error(err)

	groupID, err := groups.CreateGroup("u1", "Team", []string{"u2"})
	req.NoError(err)
	_, err = groups.SendGroupMessage("u2", groupID, "hello", domain.PayloadText, 0)
	req.NoError(err)

	_, err = calls.StartDirectCall("u1", "u2")
	req.NoError(err)
	signals.SendSignal("call", "u1", "u2", domain.SignalOffer, "sdp")

	snapshot := stats.Snapshot()
	req.EqualValues(2, snapshot.UsersRegistered)
	req.EqualValues(2, snapshot.MessagesAppended)
	req.EqualValues(1, snapshot.CallsStarted)
	req.EqualValues(1, snapshot.SignalsRelayed)
}

func TestServices_EndToEndScenario(t *testing.T) {
	req := require.New(t)
	chat, groups, calls, signals, _ := newServices(t)

	req.True(chat.RegisterUser("u1", "Alice"))
	req.True(chat.RegisterUser("u2", "Bob"))
	req.True(chat.RegisterUser("u3", "Carol"))

	// Direct chat both ways lands in one conversation
	_, err := chat.SendDirectMessage("u1", "u2", "hi", domain.PayloadText, 0)
	req.NoError(err)
	messages := chat.DirectMessages("u2", "u1")
	req.Len(messages, 1)
	req.Equal("u1", messages[0].SenderID)

	user, ok := chat.FindUserByName("bob")
	req.True(ok)
	req.Equal("u2", user.ID)

	// Group call: start, join, drain, auto-end
	groupID, err := groups.CreateGroup("u1", "Team", []string{"u2", "u3"})
	req.NoError(err)
	callID, err := calls.StartGroupCall("u1", groupID)
	req.NoError(err)
	req.NoError(calls.JoinGroupCall(callID, "u2"))
	req.NoError(calls.LeaveGroupCall(callID, "u1"))
	req.NoError(calls.LeaveGroupCall(callID, "u2"))
	call, err := calls.CallStatus(callID)
	req.NoError(err)
	req.Equal(domain.CallEnded, call.Status)

	// Signals relay and acknowledge by id
	signal := signals.SendSignal(callID, "u1", "u2", domain.SignalOffer, "sdp")
	req.Len(signals.PendingSignals("u2"), 1)
	signals.AcknowledgeSignal(callID, "u2", signal.ID)
	req.Empty(signals.PendingSignals("u2"))
}
