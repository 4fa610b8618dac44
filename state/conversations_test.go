package state

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"chat-core/domain"
	"chat-core/errors"

	"github.com/stretchr/testify/require"
)

func newConversationFixture(t *testing.T) (*ChatState, string) {
	t.Helper()
	chat := New()
	chat.Users.Register("u1", "Alice")
	chat.Users.Register("u2", "Bob")
	chat.Users.Register("u3", "Carol")
	groupID, err := chat.Groups.Create("u1", "Team", []string{"u2"})
	require.NoError(t, err)
	return chat, groupID
}

func TestConversationLog_AppendDirect_BothDirectionsOneSequence(t *testing.T) {
	req := require.New(t)
	chat, _ := newConversationFixture(t)

	// When Alice messages Bob
	msg, err := chat.Conversations.AppendDirect("u1", "u2", "hi", domain.PayloadText, 0)
	req.NoError(err)
	req.Equal("u1", msg.SenderID)
	req.Equal("Alice", msg.SenderName)

	// Then both participants read the same single sequence
	forAlice := chat.Conversations.DirectMessages("u1", "u2")
	forBob := chat.Conversations.DirectMessages("u2", "u1")
	req.Len(forAlice, 1)
	req.Equal(forAlice, forBob)
	req.Equal("hi", forAlice[0].Content)
	req.Equal("u1", forAlice[0].SenderID)
}

func TestConversationLog_AppendDirect_UnknownUser(t *testing.T) {
	chat, _ := newConversationFixture(t)

	_, err := chat.Conversations.AppendDirect("ghost", "u2", "hi", domain.PayloadText, 0)
	require.ErrorIs(t, err, errors.ErrUserNotFound)

	_, err = chat.Conversations.AppendDirect("u1", "ghost", "hi", domain.PayloadText, 0)
	require.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestConversationLog_ConcurrentAppends_NoLossOrderedIDs(t *testing.T) {
	req := require.New(t)
	chat, _ := newConversationFixture(t)

	const perSide = 50
	var wg sync.WaitGroup
	wg.Add(2)

	// When both sides append concurrently into the same conversation
	go func() {
		defer wg.Done()
		for i := 0; i < perSide; i++ {
			_, err := chat.Conversations.AppendDirect("u1", "u2", fmt.Sprintf("a%d", i), domain.PayloadText, 0)
			req.NoError(err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perSide; i++ {
			_, err := chat.Conversations.AppendDirect("u2", "u1", fmt.Sprintf("b%d", i), domain.PayloadText, 0)
			req.NoError(err)
		}
	}()
	wg.Wait()

	// Then no append is lost and ids grow strictly within the sequence
	messages := chat.Conversations.DirectMessages("u1", "u2")
	req.Len(messages, 2*perSide)
	previous := int64(0)
	for _, msg := range messages {
		id, err := strconv.ParseInt(msg.ID, 10, 64)
		req.NoError(err)
		req.Greater(id, previous)
		previous = id
	}
}

func TestConversationLog_AppendGroup_MembershipChecks(t *testing.T) {
	req := require.New(t)
	chat, groupID := newConversationFixture(t)

	// A member can post, a non-member cannot, an unknown group fails
	_, err := chat.Conversations.AppendGroup("u2", groupID, "hello team", domain.PayloadText, 0)
	req.NoError(err)
	_, err = chat.Conversations.AppendGroup("u3", groupID, "let me in", domain.PayloadText, 0)
	req.ErrorIs(err, errors.ErrNotGroupMember)
	_, err = chat.Conversations.AppendGroup("u1", "missing", "hi", domain.PayloadText, 0)
	req.ErrorIs(err, errors.ErrGroupNotFound)
}

func TestConversationLog_GroupMessages_Restricted(t *testing.T) {
	req := require.New(t)
	chat, groupID := newConversationFixture(t)
	_, err := chat.Conversations.AppendGroup("u1", groupID, "hello", domain.PayloadText, 0)
	req.NoError(err)

	messages, err := chat.Conversations.GroupMessages("u2", groupID)
	req.NoError(err)
	req.Len(messages, 1)

	_, err = chat.Conversations.GroupMessages("u3", groupID)
	req.ErrorIs(err, errors.ErrNotGroupMember)
	_, err = chat.Conversations.GroupMessages("u1", "missing")
	req.ErrorIs(err, errors.ErrGroupNotFound)
}

func TestConversationLog_DirectSummaries_SortedMostRecentFirst(t *testing.T) {
	req := require.New(t)
	chat, _ := newConversationFixture(t)

	// Given two conversations, the Carol one updated last
	_, err := chat.Conversations.AppendDirect("u1", "u2", "hi bob", domain.PayloadText, 0)
	req.NoError(err)
	_, err = chat.Conversations.AppendDirect("u1", "u3", "hi carol", domain.PayloadText, 0)
	req.NoError(err)
	_, err = chat.Conversations.AppendDirect("u3", "u1", "hey!", domain.PayloadText, 0)
	req.NoError(err)

	summaries := chat.Conversations.DirectSummaries("u1")
	req.Len(summaries, 2)
	req.Equal("u3", summaries[0].ChatID)
	req.Equal("Carol", summaries[0].ChatName)
	req.Equal("hey!", summaries[0].LastMessage)
	req.Equal("u2", summaries[1].ChatID)
	req.False(summaries[0].LastMessageAt.Before(summaries[1].LastMessageAt))

	// Bob only ever talked to Alice
	req.Len(chat.Conversations.DirectSummaries("u2"), 1)
}

func TestConversationLog_DirectSummaries_AudioPlaceholder(t *testing.T) {
	req := require.New(t)
	chat, _ := newConversationFixture(t)

	_, err := chat.Conversations.AppendDirect("u1", "u2", "bm90IHJlYWwgYXVkaW8=", domain.PayloadAudio, 4)
	req.NoError(err)

	summaries := chat.Conversations.DirectSummaries("u2")
	req.Len(summaries, 1)
	// The raw base64 payload never shows on the chat list
	req.Equal(AudioPlaceholder, summaries[0].LastMessage)
}

func TestConversationLog_GroupSummaries_EmptyGroupsSortLast(t *testing.T) {
	req := require.New(t)
	chat, groupID := newConversationFixture(t)
	quietID, err := chat.Groups.Create("u1", "Quiet", nil)
	req.NoError(err)

	_, err = chat.Conversations.AppendGroup("u1", groupID, "hello", domain.PayloadText, 0)
	req.NoError(err)

	summaries := chat.Conversations.GroupSummaries("u1")
	req.Len(summaries, 2)

	// The active group leads; the messageless one trails with zero time
	req.Equal(groupID, summaries[0].ChatID)
	req.Equal("Alice: hello", summaries[0].LastMessage)
	req.Equal(quietID, summaries[1].ChatID)
	req.Empty(summaries[1].LastMessage)
	req.True(summaries[1].LastMessageAt.IsZero())

	// Non-members see nothing
	req.Empty(chat.Conversations.GroupSummaries("u3"))
}
