package services

import (
	"chat-mirror/domain"
	"chat-mirror/errors"
	"chat-mirror/mocks"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMessageService(t *testing.T, f *fixture) (*MessageService, *mocks.MockINotifier) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockINotifier(ctrl)
	svc := NewMessageService(f.store, f.mirror, notifier, f.log, 50)
	svc.now = newClock().now
	return svc, notifier
}

func TestMessageService_Send(t *testing.T) {
	t.Run("should append the document and notify the receiver", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, bob := f.friends(t, "alice", "bob")
		svc, notifier := newMessageService(t, f)
		ctx := context.Background()

		notifier.EXPECT().
			Notify(gomock.Any(), gomock.Cond(func(n domain.Notification) bool {
				return n.SenderID == alice && n.ReceiverID == bob && n.Content == "hi"
			})).
			Return(nil).
			Times(1)

		res, err := svc.Send(ctx, SendCommand{SenderID: alice, ReceiverID: bob, Content: lo.ToPtr("hi")})
		svc.Wait()

		req.NoError(err)
		req.NotEmpty(res.Message.ID)
		req.Equal(domain.StatusSent, res.Message.Status)
		req.Equal(bob, res.Friend.ID)
		req.Equal("bob Doe", res.Friend.FullName)

		doc, ok, err := f.store.Get(ctx, domain.MessagesCollection, res.Message.ID)
		req.NoError(err)
		req.True(ok)
		stored, err := domain.MessageFromDocument(doc)
		req.NoError(err)
		req.Equal(res.Message.ChatID, stored.ChatID)
		req.True(res.Message.CreatedAt.Equal(stored.CreatedAt))

		chat, err := f.mirror.ChatByID(ctx, res.Message.ChatID)
		req.NoError(err)
		req.Nil(chat.LastMessageID, "the send path never moves the pointer")
	})

	t.Run("should not fail when the notification fails", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, bob := f.friends(t, "alice", "bob")
		svc, notifier := newMessageService(t, f)

		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(fmt.Errorf("no device token")).Times(1)

		res, err := svc.Send(context.Background(), SendCommand{SenderID: alice, ReceiverID: bob, Content: lo.ToPtr("hi")})
		svc.Wait()

		req.NoError(err)
		req.NotEmpty(res.Message.ID)
	})

	t.Run("should reject invalid commands without writing", func(t *testing.T) {
		f := newFixture(t)
		alice, bob := f.friends(t, "alice", "bob")
		svc, _ := newMessageService(t, f)

		tests := []struct {
			name string
			cmd  SendCommand
		}{
			{"self chat", SendCommand{SenderID: alice, ReceiverID: alice, Content: lo.ToPtr("hi")}},
			{"missing receiver", SendCommand{SenderID: alice, Content: lo.ToPtr("hi")}},
			{"empty body", SendCommand{SenderID: alice, ReceiverID: bob, Content: lo.ToPtr("  ")}},
			{"bad media", SendCommand{SenderID: alice, ReceiverID: bob, MediaURL: lo.ToPtr("not a url")}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := require.New(t)
				_, err := svc.Send(context.Background(), tt.cmd)
				req.ErrorIs(err, errors.ErrInvalidMessage)
			})
		}

		docs, err := f.store.Query(context.Background(), domain.MessagesCollection, domain.Query{})
		require.NoError(t, err)
		require.Empty(t, docs)
	})

	t.Run("should accept a media only message", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, bob := f.friends(t, "alice", "bob")
		svc, notifier := newMessageService(t, f)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		res, err := svc.Send(context.Background(), SendCommand{SenderID: alice, ReceiverID: bob, MediaURL: lo.ToPtr("https://cdn.chat.io/a.png")})
		svc.Wait()

		req.NoError(err)
		req.Nil(res.Message.Content)
		req.Equal("https://cdn.chat.io/a.png", lo.FromPtr(res.Message.MediaURL))
	})

	t.Run("should fail on an unknown receiver", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, _ := f.friends(t, "alice", "bob")
		svc, _ := newMessageService(t, f)

		_, err := svc.Send(context.Background(), SendCommand{SenderID: alice, ReceiverID: 999, Content: lo.ToPtr("hi")})
		req.ErrorIs(err, errors.ErrNotFound)
	})

	t.Run("should share one chat between concurrent senders of a pair", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		alice, bob := f.friends(t, "alice", "bob")
		svc, notifier := newMessageService(t, f)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(10)

		var wg sync.WaitGroup
		chatIDs := make([]uint, 10)
		errs := make([]error, 10)
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cmd := SendCommand{SenderID: alice, ReceiverID: bob, Content: text(i)}
				if i%2 == 1 {
					cmd.SenderID, cmd.ReceiverID = bob, alice
				}
				res, err := svc.Send(context.Background(), cmd)
				chatIDs[i], errs[i] = res.Message.ChatID, err
			}()
		}
		wg.Wait()
		svc.Wait()

		for _, err := range errs {
			req.NoError(err)
		}
		req.Len(lo.Uniq(chatIDs), 1)
		ids, err := f.mirror.ChatIDs(context.Background())
		req.NoError(err)
		req.Len(ids, 1)
	})
}

func TestMessageService_GetMessages(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	alice, bob := f.friends(t, "alice", "bob")
	svc, notifier := newMessageService(t, f)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	ctx := context.Background()

	for i := range 5 {
		_, err := svc.Send(ctx, SendCommand{SenderID: alice, ReceiverID: bob, Content: text(i)})
		req.NoError(err)
	}
	svc.Wait()

	t.Run("should page in creation order from either side", func(t *testing.T) {
		req := require.New(t)
		first, err := svc.GetMessages(ctx, MessagesQuery{UserID: bob, FriendID: alice, Page: 1, PageSize: 2})
		req.NoError(err)
		req.Equal(1, first.CurrentPage)
		req.Equal([]string{"message 0", "message 1"}, contents(first.Messages))

		last, err := svc.GetMessages(ctx, MessagesQuery{UserID: alice, FriendID: bob, Page: 3, PageSize: 2})
		req.NoError(err)
		req.Equal([]string{"message 4"}, contents(last.Messages))

		beyond, err := svc.GetMessages(ctx, MessagesQuery{UserID: alice, FriendID: bob, Page: 4, PageSize: 2})
		req.NoError(err)
		req.Empty(beyond.Messages)
	})

	t.Run("should reject invalid pages", func(t *testing.T) {
		req := require.New(t)
		for _, q := range []MessagesQuery{
			{UserID: alice, FriendID: bob, Page: 0, PageSize: 2},
			{UserID: alice, FriendID: bob, Page: 1, PageSize: 0},
			{UserID: alice, FriendID: bob, Page: 1, PageSize: 51},
		} {
			_, err := svc.GetMessages(ctx, q)
			req.ErrorIs(err, errors.ErrInvalidPagination)
		}
	})

	t.Run("should report a missing chat", func(t *testing.T) {
		req := require.New(t)
		carol, _ := f.friends(t, "carol", "dave")
		_, err := svc.GetMessages(ctx, MessagesQuery{UserID: alice, FriendID: carol, Page: 1, PageSize: 2})
		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func TestMessageService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.friends(t, "alice", "bob")
	svc, notifier := newMessageService(t, f)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	ctx := context.Background()

	res, err := svc.Send(ctx, SendCommand{SenderID: alice, ReceiverID: bob, Content: lo.ToPtr("hi")})
	require.NoError(t, err)
	svc.Wait()

	t.Run("should update a valid status", func(t *testing.T) {
		req := require.New(t)
		status, err := svc.UpdateStatus(ctx, res.Message.ID, "read")
		req.NoError(err)
		req.Equal(domain.StatusRead, status)

		doc, _, err := f.store.Get(ctx, domain.MessagesCollection, res.Message.ID)
		req.NoError(err)
		req.Equal("read", doc.Fields[domain.FieldStatus])
	})

	t.Run("should reject an unknown status without mutation", func(t *testing.T) {
		req := require.New(t)
		_, err := svc.UpdateStatus(ctx, res.Message.ID, "archived")
		req.ErrorIs(err, errors.ErrInvalidStatus)

		doc, _, err := f.store.Get(ctx, domain.MessagesCollection, res.Message.ID)
		req.NoError(err)
		req.Equal("read", doc.Fields[domain.FieldStatus])
	})

	t.Run("should report an unknown document", func(t *testing.T) {
		req := require.New(t)
		_, err := svc.UpdateStatus(ctx, "missing", "delivered")
		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func TestMessageService_DeleteMessage(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.friends(t, "alice", "bob")
	svc, notifier := newMessageService(t, f)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	ctx := context.Background()

	res, err := svc.Send(ctx, SendCommand{SenderID: alice, ReceiverID: bob, Content: lo.ToPtr("hi")})
	require.NoError(t, err)
	svc.Wait()

	t.Run("should forbid anyone but the sender", func(t *testing.T) {
		req := require.New(t)
		err := svc.DeleteMessage(ctx, bob, res.Message.ID)
		req.ErrorIs(err, errors.ErrForbidden)

		_, ok, err := f.store.Get(ctx, domain.MessagesCollection, res.Message.ID)
		req.NoError(err)
		req.True(ok)
	})

	t.Run("should delete for the sender", func(t *testing.T) {
		req := require.New(t)
		req.NoError(svc.DeleteMessage(ctx, alice, res.Message.ID))

		_, ok, err := f.store.Get(ctx, domain.MessagesCollection, res.Message.ID)
		req.NoError(err)
		req.False(ok)
	})

	t.Run("should report an already deleted message", func(t *testing.T) {
		req := require.New(t)
		err := svc.DeleteMessage(ctx, alice, res.Message.ID)
		req.ErrorIs(err, errors.ErrNotFound)
	})
}

func contents(messages []domain.MessageDocument) []string {
	return lo.Map(messages, func(m domain.MessageDocument, _ int) string { return lo.FromPtr(m.Content) })
}
