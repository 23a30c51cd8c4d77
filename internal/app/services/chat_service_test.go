package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/websocket"
)

type chatFixture struct {
	messages *fakeMessageStore
	members  *fakeTribeMemberStore
	hub      *websocket.Hub
	service  services.ChatService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		messages: newFakeMessageStore(),
		members:  newFakeTribeMemberStore(),
		hub:      websocket.NewHub(zerolog.Nop()),
	}
	go f.hub.Run()
	t.Cleanup(f.hub.Stop)
	f.service = services.NewChatService(f.messages, f.members, f.hub, zerolog.Nop())
	return f
}

func TestChatHistory(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.members.Add(context.Background(), 1, 10)
	require.NoError(t, err)

	t.Run("NonMemberRejected", func(t *testing.T) {
		_, err := f.service.History(context.Background(), 1, 99)
		assert.ErrorIs(t, err, apperrors.ErrNotTribeMember)
	})

	t.Run("MessagesAscendByTime", func(t *testing.T) {
		_, err := f.service.Send(context.Background(), 1, 10, "first")
		require.NoError(t, err)
		_, err = f.service.Send(context.Background(), 1, 10, "second")
		require.NoError(t, err)

		history, err := f.service.History(context.Background(), 1, 10)
		require.NoError(t, err)
		require.Len(t, history.Messages, 2)
		assert.Equal(t, "first", history.Messages[0].Content)
		assert.Equal(t, "second", history.Messages[1].Content)
	})
}

func TestChatHistoryWindow(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.members.Add(context.Background(), 2, 10)
	require.NoError(t, err)

	for i := 1; i <= 205; i++ {
		_, err := f.service.PersistMessage(context.Background(), 2, 10, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	history, err := f.service.History(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, history.Messages, 200)

	// the oldest messages fall off the front; the latest one is always present
	assert.Equal(t, "message 6", history.Messages[0].Content)
	assert.Equal(t, "message 205", history.Messages[len(history.Messages)-1].Content)
	for i := 1; i < len(history.Messages); i++ {
		assert.True(t, !history.Messages[i].CreatedAt.Before(history.Messages[i-1].CreatedAt))
	}
}

func TestChatSend(t *testing.T) {
	f := newChatFixture(t)
	_, err := f.members.Add(context.Background(), 1, 10)
	require.NoError(t, err)

	t.Run("NonMemberCannotSend", func(t *testing.T) {
		_, err := f.service.Send(context.Background(), 1, 99, "hi")
		assert.ErrorIs(t, err, apperrors.ErrNotTribeMember)
	})

	t.Run("BlankMessageRejected", func(t *testing.T) {
		_, err := f.service.Send(context.Background(), 1, 10, "   ")
		assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	})

	t.Run("SentMessageReachesHubListeners", func(t *testing.T) {
		received, dispose := f.hub.Listen(4)
		defer dispose()

		sent, err := f.service.Send(context.Background(), 1, 10, "hello tribe")
		require.NoError(t, err)
		assert.NotZero(t, sent.ID)

		select {
		case message := <-received:
			assert.Equal(t, sent.ID, message.ID)
			assert.Equal(t, int64(1), message.TribeID)
			assert.Equal(t, "hello tribe", message.Content)
		case <-time.After(time.Second):
			t.Fatal("broadcast did not reach the listener")
		}
	})
}

func TestPersistMessage(t *testing.T) {
	f := newChatFixture(t)

	message, err := f.service.PersistMessage(context.Background(), 7, 3, "  trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "trimmed", message.Content)
	assert.Equal(t, int64(7), message.TribeID)
	assert.Equal(t, int64(3), message.SenderID)

	stored, err := f.messages.ListForTribe(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "trimmed", stored[0].Content)
}
