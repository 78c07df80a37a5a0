package push

import (
	"chat-mirror/domain"
	"chat-mirror/errors"
	"chat-mirror/infrastructure/storage"
	"chat-mirror/mocks"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupNotifier(t *testing.T) (*TokenNotifier, *mocks.MockIPusher) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := storage.NewDocumentStore(db, log)
	t.Cleanup(func() {
		_ = store.Close()
		_ = db.Close()
	})
	pusher := mocks.NewMockIPusher(gomock.NewController(t))
	return NewTokenNotifier(store, pusher, log, time.Millisecond), pusher
}

func TestTokenNotifier_Notify(t *testing.T) {
	ctx := context.Background()
	notification := domain.Notification{ChatID: 7, SenderID: 1, ReceiverID: 2, Content: "hello"}

	t.Run("should skip a receiver without device", func(t *testing.T) {
		req := require.New(t)
		notifier, pusher := setupNotifier(t)
		pusher.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		req.NoError(notifier.Notify(ctx, notification))
	})

	t.Run("should push to the registered device", func(t *testing.T) {
		req := require.New(t)
		notifier, pusher := setupNotifier(t)
		req.NoError(notifier.RegisterDevice(ctx, 2, "old-token"))
		req.NoError(notifier.RegisterDevice(ctx, 2, "token-2"))

		pusher.EXPECT().
			Push(gomock.Any(), "token-2", domain.PushPayload{
				Title: "New message",
				Body:  "hello",
				Data:  map[string]string{"senderId": "1", "chatId": "7"},
			}).
			Return(nil).
			Times(1)

		req.NoError(notifier.Notify(ctx, notification))
	})

	t.Run("should fall back to a default body", func(t *testing.T) {
		req := require.New(t)
		notifier, pusher := setupNotifier(t)
		req.NoError(notifier.RegisterDevice(ctx, 2, "token-2"))

		pusher.EXPECT().
			Push(gomock.Any(), "token-2", gomock.Cond(func(p domain.PushPayload) bool { return p.Body == "You have a new message!" })).
			Return(nil)

		req.NoError(notifier.Notify(ctx, domain.Notification{ChatID: 7, SenderID: 1, ReceiverID: 2}))
	})

	t.Run("should retry transient failures", func(t *testing.T) {
		req := require.New(t)
		notifier, pusher := setupNotifier(t)
		req.NoError(notifier.RegisterDevice(ctx, 2, "token-2"))

		gomock.InOrder(
			pusher.EXPECT().Push(gomock.Any(), "token-2", gomock.Any()).Return(fmt.Errorf("gateway timeout")).Times(2),
			pusher.EXPECT().Push(gomock.Any(), "token-2", gomock.Any()).Return(nil).Times(1),
		)

		req.NoError(notifier.Notify(ctx, notification))
	})

	t.Run("should not retry an unregistered device", func(t *testing.T) {
		req := require.New(t)
		notifier, pusher := setupNotifier(t)
		req.NoError(notifier.RegisterDevice(ctx, 2, "token-2"))

		pusher.EXPECT().Push(gomock.Any(), "token-2", gomock.Any()).Return(errors.ErrUnregistered).Times(1)

		req.ErrorIs(notifier.Notify(ctx, notification), errors.ErrUnregistered)
	})

	t.Run("should give up after the last retry", func(t *testing.T) {
		req := require.New(t)
		notifier, pusher := setupNotifier(t)
		req.NoError(notifier.RegisterDevice(ctx, 2, "token-2"))

		pusher.EXPECT().Push(gomock.Any(), "token-2", gomock.Any()).Return(fmt.Errorf("gateway down")).Times(maxRetries + 1)

		req.Error(notifier.Notify(ctx, notification))
	})
}
