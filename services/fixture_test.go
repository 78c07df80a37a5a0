package services

import (
	"chat-mirror/infrastructure/mirror"
	"chat-mirror/infrastructure/mirror/mirrortest"
	"chat-mirror/infrastructure/storage"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *storage.DocumentStore
	mirror *mirror.Mirror
	log    *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := storage.NewDocumentStore(db, log)
	t.Cleanup(func() {
		_ = store.Close()
		_ = db.Close()
	})
	return &fixture{store: store, mirror: mirrortest.New(t, log), log: log}
}

// friends creates two users who accepted each other.
func (f *fixture) friends(t *testing.T, a, b string) (uint, uint) {
	t.Helper()
	ctx := context.Background()
	first, err := f.mirror.CreateUser(ctx, a, a+"@chat.io", a, "Doe")
	require.NoError(t, err)
	second, err := f.mirror.CreateUser(ctx, b, b+"@chat.io", b, "Doe")
	require.NoError(t, err)
	require.NoError(t, f.mirror.SetFriendship(ctx, first, second, mirror.FriendAccepted))
	return first, second
}

// clock hands out strictly increasing times one second apart.
type clock struct {
	mu   sync.Mutex
	next time.Time
}

func newClock() *clock {
	return &clock{next: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(time.Second)
	return t
}

func text(i int) *string {
	s := fmt.Sprintf("message %d", i)
	return &s
}
