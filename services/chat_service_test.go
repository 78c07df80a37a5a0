package services

import (
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChatService_DeleteChat(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.friends(t, "alice", "bob")
	carol, dave := f.friends(t, "carol", "dave")
	messages, notifier := newMessageService(t, f)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	svc := NewChatService(f.store, f.mirror, f.log)
	ctx := context.Background()

	var chatID uint
	for i := range 20 {
		res, err := messages.Send(ctx, SendCommand{SenderID: alice, ReceiverID: bob, Content: text(i)})
		require.NoError(t, err)
		chatID = res.Message.ChatID
	}
	other, err := messages.Send(ctx, SendCommand{SenderID: carol, ReceiverID: dave, Content: text(0)})
	require.NoError(t, err)
	messages.Wait()

	t.Run("should forbid a non participant", func(t *testing.T) {
		req := require.New(t)
		err := svc.DeleteChat(ctx, carol, chatID)
		req.ErrorIs(err, errors.ErrForbidden)

		_, err = f.mirror.ChatByID(ctx, chatID)
		req.NoError(err)
	})

	t.Run("should remove every document then the chat", func(t *testing.T) {
		req := require.New(t)
		req.NoError(svc.DeleteChat(ctx, bob, chatID))

		docs, err := f.store.Query(ctx, domain.MessagesCollection, domain.Query{
			Where: []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, chatID)},
		})
		req.NoError(err)
		req.Empty(docs)
		_, err = f.mirror.ChatByID(ctx, chatID)
		req.ErrorIs(err, errors.ErrNotFound)

		_, ok, err := f.store.Get(ctx, domain.MessagesCollection, other.Message.ID)
		req.NoError(err)
		req.True(ok, "other conversations are untouched")
	})

	t.Run("should report an unknown chat", func(t *testing.T) {
		req := require.New(t)
		err := svc.DeleteChat(ctx, alice, chatID)
		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func TestChatService_ListChats(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	alice, bob := f.friends(t, "alice", "bob")
	messages, notifier := newMessageService(t, f)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	svc := NewChatService(f.store, f.mirror, f.log)
	ctx := context.Background()

	_, err := messages.Send(ctx, SendCommand{SenderID: alice, ReceiverID: bob, Content: text(0)})
	req.NoError(err)
	messages.Wait()

	chats, err := svc.ListChats(ctx, alice)
	req.NoError(err)
	req.Len(chats, 1)
	req.Equal(bob, chats[0].Friend.ID)
	req.Nil(chats[0].LastMessage, "nothing projected yet")
}
