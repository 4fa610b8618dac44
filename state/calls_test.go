package state

import (
	"sync"
	"testing"

	"chat-core/domain"
	"chat-core/errors"

	"github.com/stretchr/testify/require"
)

func newCallFixture(t *testing.T) (*ChatState, string) {
	t.Helper()
	chat := New()
	chat.Users.Register("u1", "Alice")
	chat.Users.Register("u2", "Bob")
	chat.Users.Register("u3", "Carol")
	groupID, err := chat.Groups.Create("u1", "Team", []string{"u2"})
	require.NoError(t, err)
	return chat, groupID
}

func TestCallRegistry_DirectLifecycle(t *testing.T) {
	req := require.New(t)
	chat, _ := newCallFixture(t)

	// Given Alice calls Bob
	callID, err := chat.Calls.StartDirect("u1", "u2")
	req.NoError(err)
	call, err := chat.Calls.Get(callID)
	req.NoError(err)
	req.Equal(domain.CallCalling, call.Status)
	req.Equal("Alice", call.CallerName)
	req.Equal([]string{"u1", "u2"}, call.Participants)
	req.True(call.EndedAt.IsZero())

	// Only the recipient can answer
	req.ErrorIs(chat.Calls.AnswerDirect(callID, "u1"), errors.ErrNotCallRecipient)
	req.NoError(chat.Calls.AnswerDirect(callID, "u2"))
	call, _ = chat.Calls.Get(callID)
	req.Equal(domain.CallActive, call.Status)

	// Either side can hang up; the end time gets stamped
	req.NoError(chat.Calls.EndDirect(callID, "u1"))
	call, _ = chat.Calls.Get(callID)
	req.Equal(domain.CallEnded, call.Status)
	req.False(call.EndedAt.IsZero())
}

func TestCallRegistry_StartDirect_UnknownUser(t *testing.T) {
	chat, _ := newCallFixture(t)

	_, err := chat.Calls.StartDirect("ghost", "u2")
	require.ErrorIs(t, err, errors.ErrUserNotFound)
	_, err = chat.Calls.StartDirect("u1", "ghost")
	require.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestCallRegistry_Reject(t *testing.T) {
	req := require.New(t)
	chat, _ := newCallFixture(t)
	callID, _ := chat.Calls.StartDirect("u1", "u2")

	req.ErrorIs(chat.Calls.RejectDirect(callID, "u1"), errors.ErrNotCallRecipient)
	req.NoError(chat.Calls.RejectDirect(callID, "u2"))

	call, _ := chat.Calls.Get(callID)
	req.Equal(domain.CallRejected, call.Status)
	req.False(call.EndedAt.IsZero())
}

func TestCallRegistry_EndedStaysEnded(t *testing.T) {
	req := require.New(t)
	chat, _ := newCallFixture(t)
	callID, _ := chat.Calls.StartDirect("u1", "u2")
	req.NoError(chat.Calls.EndDirect(callID, "u2"))

	// Answering or rejecting a finished call never resurrects it
	req.NoError(chat.Calls.AnswerDirect(callID, "u2"))
	req.NoError(chat.Calls.RejectDirect(callID, "u2"))
	call, _ := chat.Calls.Get(callID)
	req.Equal(domain.CallEnded, call.Status)

	// Re-ending is tolerated
	req.NoError(chat.Calls.EndDirect(callID, "u1"))
	call, _ = chat.Calls.Get(callID)
	req.Equal(domain.CallEnded, call.Status)

	// A stranger still cannot touch it
	req.ErrorIs(chat.Calls.EndDirect(callID, "u3"), errors.ErrNotCallParticipant)
}

func TestCallRegistry_ActiveCallsFor(t *testing.T) {
	req := require.New(t)
	chat, _ := newCallFixture(t)

	pending, _ := chat.Calls.StartDirect("u1", "u2")
	finished, _ := chat.Calls.StartDirect("u3", "u1")
	req.NoError(chat.Calls.EndDirect(finished, "u1"))

	active := chat.Calls.ActiveCallsFor("u1")
	req.Len(active, 1)
	req.Equal(pending, active[0].ID)

	req.Empty(chat.Calls.ActiveCallsFor("ghost"))
}

func TestCallRegistry_GroupLifecycle(t *testing.T) {
	req := require.New(t)
	chat, groupID := newCallFixture(t)

	// A group call starts Active with only the initiator on it
	callID, err := chat.Calls.StartGroup("u1", groupID)
	req.NoError(err)
	call, err := chat.Calls.Get(callID)
	req.NoError(err)
	req.Equal(domain.CallActive, call.Status)
	req.Equal([]string{"u1"}, call.Participants)

	// Members join idempotently; outsiders are refused
	req.NoError(chat.Calls.JoinGroup(callID, "u2"))
	req.NoError(chat.Calls.JoinGroup(callID, "u2"))
	req.ErrorIs(chat.Calls.JoinGroup(callID, "u3"), errors.ErrNotGroupMember)
	call, _ = chat.Calls.Get(callID)
	req.Equal([]string{"u1", "u2"}, call.Participants)

	// The call ends by itself once the last participant leaves
	req.NoError(chat.Calls.LeaveGroup(callID, "u1"))
	call, _ = chat.Calls.Get(callID)
	req.Equal(domain.CallActive, call.Status)
	req.NoError(chat.Calls.LeaveGroup(callID, "u2"))
	call, _ = chat.Calls.Get(callID)
	req.Equal(domain.CallEnded, call.Status)
	req.False(call.EndedAt.IsZero())
}

func TestCallRegistry_StartGroup_Checks(t *testing.T) {
	req := require.New(t)
	chat, groupID := newCallFixture(t)

	_, err := chat.Calls.StartGroup("ghost", groupID)
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = chat.Calls.StartGroup("u1", "missing")
	req.ErrorIs(err, errors.ErrGroupNotFound)
	_, err = chat.Calls.StartGroup("u3", groupID)
	req.ErrorIs(err, errors.ErrNotGroupMember)
}

func TestCallRegistry_EndGroup_InitiatorOnly(t *testing.T) {
	req := require.New(t)
	chat, groupID := newCallFixture(t)
	callID, _ := chat.Calls.StartGroup("u1", groupID)
	req.NoError(chat.Calls.JoinGroup(callID, "u2"))

	req.ErrorIs(chat.Calls.EndGroup(callID, "u2"), errors.ErrNotCallInitiator)
	req.NoError(chat.Calls.EndGroup(callID, "u1"))

	call, _ := chat.Calls.Get(callID)
	req.Equal(domain.CallEnded, call.Status)
}

func TestCallRegistry_GroupOpsRejectDirectCalls(t *testing.T) {
	req := require.New(t)
	chat, _ := newCallFixture(t)
	callID, _ := chat.Calls.StartDirect("u1", "u2")

	req.ErrorIs(chat.Calls.JoinGroup(callID, "u2"), errors.ErrCallNotFound)
	req.ErrorIs(chat.Calls.JoinGroup("missing", "u2"), errors.ErrCallNotFound)
}

func TestCallRegistry_ActiveGroupCalls(t *testing.T) {
	req := require.New(t)
	chat, groupID := newCallFixture(t)

	live, _ := chat.Calls.StartGroup("u1", groupID)
	done, _ := chat.Calls.StartGroup("u2", groupID)
	req.NoError(chat.Calls.EndGroup(done, "u2"))

	active := chat.Calls.ActiveGroupCalls(groupID)
	req.Len(active, 1)
	req.Equal(live, active[0].ID)
}

func TestCallRegistry_ConcurrentJoinLeave(t *testing.T) {
	req := require.New(t)
	chat, groupID := newCallFixture(t)
	callID, _ := chat.Calls.StartGroup("u1", groupID)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req.NoError(chat.Calls.JoinGroup(callID, "u2"))
			req.NoError(chat.Calls.LeaveGroup(callID, "u2"))
		}()
	}
	wg.Wait()

	// The initiator never left, so the call must still be running
	call, err := chat.Calls.Get(callID)
	req.NoError(err)
	req.Equal(domain.CallActive, call.Status)
	req.Contains(call.Participants, "u1")
	req.NotContains(call.Participants, "u2")
}
