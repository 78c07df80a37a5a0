package storage

import (
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *DocumentStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := NewDocumentStore(db, slog.Default(), WithPollInterval(10*time.Millisecond))
	t.Cleanup(func() {
		_ = store.Close()
		_ = db.Close()
	})
	return store
}

func messageFields(chatID uint, content string, at time.Time) map[string]any {
	return map[string]any{
		domain.FieldChatID:     chatID,
		domain.FieldSenderID:   uint(1),
		domain.FieldReceiverID: uint(2),
		domain.FieldContent:    content,
		domain.FieldStatus:     domain.StatusSent,
		domain.FieldCreatedAt:  at,
	}
}

func Test_Append_Then_Get_Roundtrips_Fields(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)
	at := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)

	id, err := store.Append(ctx, domain.MessagesCollection, messageFields(7, "hello", at))
	req.NoError(err)
	req.NotEmpty(id)

	doc, ok, err := store.Get(ctx, domain.MessagesCollection, id)
	req.NoError(err)
	req.True(ok)
	req.Equal(id, doc.ID)

	message, err := domain.MessageFromDocument(doc)
	req.NoError(err)
	req.Equal(uint(7), message.ChatID)
	req.NotNil(message.Content)
	req.Equal("hello", *message.Content)
	req.Equal(domain.StatusSent, message.Status)
	req.True(at.Equal(message.CreatedAt))
}

func Test_Get_Unknown_Document(t *testing.T) {
	req := require.New(t)
	store := setupStore(t)

	_, ok, err := store.Get(context.Background(), domain.MessagesCollection, "nope")
	req.NoError(err)
	req.False(ok)
}

func Test_Update_Merges_And_Fails_On_Missing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)

	id, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, "hi", time.Now()))
	req.NoError(err)
	req.NoError(store.Update(ctx, domain.MessagesCollection, id, map[string]any{domain.FieldStatus: domain.StatusRead}))

	doc, _, err := store.Get(ctx, domain.MessagesCollection, id)
	req.NoError(err)
	req.Equal("read", doc.Fields[domain.FieldStatus])
	req.Equal("hi", doc.Fields[domain.FieldContent])

	err = store.Update(ctx, domain.MessagesCollection, "missing", map[string]any{domain.FieldStatus: "read"})
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_Delete_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)

	id, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, "bye", time.Now()))
	req.NoError(err)
	req.NoError(store.Delete(ctx, domain.MessagesCollection, id))
	req.NoError(store.Delete(ctx, domain.MessagesCollection, id))

	_, ok, err := store.Get(ctx, domain.MessagesCollection, id)
	req.NoError(err)
	req.False(ok)
}

func Test_Query_Filters_Orders_And_Pages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, content := range []string{"m1", "m2", "m3"} {
		_, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, content, base.Add(time.Duration(i)*time.Second)))
		req.NoError(err)
	}
	_, err := store.Append(ctx, domain.MessagesCollection, messageFields(2, "other", base.Add(time.Hour)))
	req.NoError(err)

	latest, err := store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where:   []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, uint(1))},
		OrderBy: domain.FieldCreatedAt,
		Desc:    true,
		Limit:   1,
	})
	req.NoError(err)
	req.Len(latest, 1)
	req.Equal("m3", latest[0].Fields[domain.FieldContent])

	page, err := store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where:   []domain.Filter{domain.Where(domain.FieldChatID, domain.OpEqual, uint(1))},
		OrderBy: domain.FieldCreatedAt,
		Limit:   2,
		Offset:  1,
	})
	req.NoError(err)
	req.Len(page, 2)
	req.Equal("m2", page[0].Fields[domain.FieldContent])
	req.Equal("m3", page[1].Fields[domain.FieldContent])

	after, err := store.Query(ctx, domain.MessagesCollection, domain.Query{
		Where: []domain.Filter{domain.Where(domain.FieldCreatedAt, domain.OpGreater, base.Add(time.Second))},
	})
	req.NoError(err)
	req.Len(after, 2)

	_, err = store.Query(ctx, domain.MessagesCollection, domain.Query{Limit: -1})
	req.ErrorIs(err, errors.ErrInvalidPagination)
}

func Test_Query_Breaks_Ties_By_ID_In_The_Order_Direction(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, id := range []string{"tie-b", "tie-a", "tie-c"} {
		req.NoError(store.Put(ctx, domain.MessagesCollection, id, messageFields(1, id, at)))
	}
	ids := func(docs []domain.Document) []string {
		out := make([]string, 0, len(docs))
		for _, doc := range docs {
			out = append(out, doc.ID)
		}
		return out
	}

	asc, err := store.Query(ctx, domain.MessagesCollection, domain.Query{OrderBy: domain.FieldCreatedAt})
	req.NoError(err)
	req.Equal([]string{"tie-a", "tie-b", "tie-c"}, ids(asc))

	desc, err := store.Query(ctx, domain.MessagesCollection, domain.Query{OrderBy: domain.FieldCreatedAt, Desc: true})
	req.NoError(err)
	req.Equal([]string{"tie-c", "tie-b", "tie-a"}, ids(desc))
}

func Test_Subscribe_Streams_Changes_In_Commit_Order(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := setupStore(t)

	// Written before subscribing: must be replayed from the log
	first, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, "before", time.Now()))
	req.NoError(err)

	feed, err := store.Subscribe(ctx, domain.MessagesCollection, 0)
	req.NoError(err)

	req.NoError(store.Update(ctx, domain.MessagesCollection, first, map[string]any{domain.FieldStatus: "delivered"}))
	req.NoError(store.Delete(ctx, domain.MessagesCollection, first))

	var events []domain.ChangeEvent
	timeout := time.After(5 * time.Second)
	for len(events) < 3 {
		select {
		case evt, ok := <-feed:
			req.True(ok)
			events = append(events, evt)
		case <-timeout:
			req.FailNow("timed out waiting for changes", "got %d", len(events))
		}
	}

	req.Equal(domain.ChangeAdded, events[0].Type)
	req.Equal(domain.ChangeModified, events[1].Type)
	req.Equal(domain.ChangeRemoved, events[2].Type)
	req.Equal("before", events[2].Document.Fields[domain.FieldContent])
	for i, evt := range events {
		req.Equal(first, evt.DocumentID())
		req.Equal(domain.MessagesCollection, evt.Collection)
		if i > 0 {
			req.Greater(evt.Seq, events[i-1].Seq)
		}
	}
	key, ok := events[0].ConversationKey()
	req.True(ok)
	req.Equal(uint(1), key)
}

func Test_Subscribe_Resumes_After_Sequence(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := setupStore(t)

	for _, content := range []string{"a", "b", "c"} {
		_, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, content, time.Now()))
		req.NoError(err)
	}

	feed, err := store.Subscribe(ctx, domain.MessagesCollection, 2)
	req.NoError(err)

	select {
	case evt := <-feed:
		req.Equal(uint64(3), evt.Seq)
		req.Equal("c", evt.Document.Fields[domain.FieldContent])
	case <-time.After(5 * time.Second):
		req.FailNow("timed out waiting for change")
	}
}

func Test_Subscribe_Closes_Feed_On_Cancel(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	store := setupStore(t)

	feed, err := store.Subscribe(ctx, domain.MessagesCollection, 0)
	req.NoError(err)
	cancel()

	req.Eventually(func() bool {
		select {
		case _, ok := <-feed:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func Test_Collections_Are_Isolated(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)

	req.NoError(store.Put(ctx, domain.UsersCollection, "1", map[string]any{domain.FieldDeviceToken: "token-1"}))
	_, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, "x", time.Now()))
	req.NoError(err)

	users, err := store.Query(ctx, domain.UsersCollection, domain.Query{})
	req.NoError(err)
	req.Len(users, 1)
	req.Equal("token-1", users[0].Fields[domain.FieldDeviceToken])
}

func Test_Changes_Lists_The_Log_After_Sequence(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupStore(t)
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	id, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, "a", at))
	req.NoError(err)
	req.NoError(store.Update(ctx, domain.MessagesCollection, id, map[string]any{domain.FieldStatus: "read"}))
	req.NoError(store.Delete(ctx, domain.MessagesCollection, id))

	all, err := store.Changes(domain.MessagesCollection, 0)
	req.NoError(err)
	req.Len(all, 3)
	req.Equal([]domain.ChangeType{domain.ChangeAdded, domain.ChangeModified, domain.ChangeRemoved},
		[]domain.ChangeType{all[0].Type, all[1].Type, all[2].Type})
	req.Equal("read", all[2].Document.Fields[domain.FieldStatus])

	tail, err := store.Changes(domain.MessagesCollection, all[1].Seq)
	req.NoError(err)
	req.Len(tail, 1)
	req.Equal(domain.ChangeRemoved, tail[0].Type)
}

func Test_Subscribe_Steps_Over_Undecodable_Change(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := setupStore(t)

	for _, content := range []string{"a", "b", "c"} {
		_, err := store.Append(ctx, domain.MessagesCollection, messageFields(1, content, time.Now()))
		req.NoError(err)
	}
	req.NoError(store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(changeKey(domain.MessagesCollection, 2), []byte{0xff, 0xff, 0xff})
	}))

	listed, err := store.Changes(domain.MessagesCollection, 0)
	req.NoError(err)
	req.Len(listed, 2)

	receive := func(feed <-chan domain.ChangeEvent) domain.ChangeEvent {
		select {
		case evt, ok := <-feed:
			req.True(ok)
			return evt
		case <-time.After(5 * time.Second):
			req.FailNow("timed out waiting for change")
		}
		return domain.ChangeEvent{}
	}

	// Resubscribing from the last delivered sequence must not get stuck on the bad record.
	for attempt := 0; attempt < 3; attempt++ {
		feedCtx, feedCancel := context.WithCancel(ctx)
		feed, err := store.Subscribe(feedCtx, domain.MessagesCollection, 1)
		req.NoError(err)
		evt := receive(feed)
		req.Equal(uint64(3), evt.Seq)
		req.Equal("c", evt.Document.Fields[domain.FieldContent])
		feedCancel()
	}

	feed, err := store.Subscribe(ctx, domain.MessagesCollection, 0)
	req.NoError(err)
	req.Equal(uint64(1), receive(feed).Seq)
	req.Equal(uint64(3), receive(feed).Seq)
	_, err = store.Append(ctx, domain.MessagesCollection, messageFields(1, "d", time.Now()))
	req.NoError(err)
	req.Equal(uint64(4), receive(feed).Seq)
}

func Test_Tail_Cancels_The_Feed_When_The_Log_Is_Unreadable(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)
	store := NewDocumentStore(db, slog.Default(), WithPollInterval(10*time.Millisecond))
	req.NoError(db.Close())

	feedCtx, cancel := context.WithCancel(context.Background())
	out := make(chan domain.ChangeEvent, 1)
	go store.tail(feedCtx, cancel, domain.MessagesCollection, 0, make(chan struct{}), out)

	select {
	case _, ok := <-out:
		req.False(ok)
	case <-time.After(5 * time.Second):
		req.FailNow("tail did not stop")
	}
	req.ErrorIs(feedCtx.Err(), context.Canceled)
}
