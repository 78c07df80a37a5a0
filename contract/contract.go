//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-mirror/domain"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IDocumentStore is the authoritative, schemaless message store.
// Subscribe yields every change committed after fromSeq, unordered with respect to
// any other consumer, until ctx ends or the transport fails (the channel is then closed).
type IDocumentStore interface {
	Append(ctx context.Context, collection string, fields map[string]any) (string, error)
	Put(ctx context.Context, collection, id string, fields map[string]any) error
	Get(ctx context.Context, collection, id string) (domain.Document, bool, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q domain.Query) ([]domain.Document, error)
	Subscribe(ctx context.Context, collection string, fromSeq uint64) (<-chan domain.ChangeEvent, error)
}

// ICheckpointStore persists how far a collection's change log has been projected,
// so a restart resumes there, and drops the records behind that point.
type ICheckpointStore interface {
	LoadCursor(collection string) (uint64, error)
	SaveCursor(collection string, seq uint64) error
	TrimChanges(collection string, uptoSeq uint64) (int, error)
}

// IMirror is the relational projection of users, chats and messages.
// Every mutating method is a single statement (or a single transaction) scoped to one row.
type IMirror interface {
	UserExists(ctx context.Context, id uint) (bool, error)
	UserSummary(ctx context.Context, id uint) (domain.UserSummary, error)

	ChatByID(ctx context.Context, id uint) (domain.Chat, error)
	FindChat(ctx context.Context, a, b uint) (domain.Chat, error)
	FindOrCreateChat(ctx context.Context, a, b uint) (domain.Chat, error)
	ChatIDs(ctx context.Context) ([]uint, error)
	ChatsForUser(ctx context.Context, userID uint) ([]domain.ChatSummary, error)
	DeleteChat(ctx context.Context, id uint) error

	AdvanceLastMessage(ctx context.Context, chatID, messageID uint, at time.Time, conditional bool) (bool, error)
	SetLastMessage(ctx context.Context, chatID, messageID uint, at time.Time) error
	ClearLastMessage(ctx context.Context, chatID uint) error

	InsertMessage(ctx context.Context, message domain.MirroredMessage) (domain.MirroredMessage, error)
	MessageByDocumentID(ctx context.Context, documentID string) (domain.MirroredMessage, error)
	LatestMessage(ctx context.Context, chatID uint, excludingDocumentID string) (domain.MirroredMessage, error)
	MessagesForChat(ctx context.Context, chatID uint) ([]domain.MirroredMessage, error)
	UpdateMessageStatus(ctx context.Context, documentID string, status domain.MessageStatus) error
	DeleteMessage(ctx context.Context, documentID string) error
}

// INotifier delivers the push notification of a new message. Callers never wait on it.
type INotifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// IPusher delivers one payload to one device.
type IPusher interface {
	Push(ctx context.Context, deviceToken string, payload domain.PushPayload) error
}

// IProjector applies one change event to the mirror.
type IProjector interface {
	Apply(ctx context.Context, evt domain.ChangeEvent) domain.ProjectionResult
}

// ResultSink receives every projection outcome; the host decides metrics and alerting.
type ResultSink interface {
	Record(evt domain.ChangeEvent, result domain.ProjectionResult)
}
