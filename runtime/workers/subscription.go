package workers

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	"log/slog"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the service name reported on the gRPC health endpoint.
const HealthService = "chat.mirror.projector"

var _ contract.Worker = (*SubscriptionWorker)(nil)

type HealthReporter interface {
	SetServingStatus(service string, servingStatus healthpb.HealthCheckResponse_ServingStatus)
}

// Cursor tracks the feed position across resubscriptions.
type Cursor interface {
	Received(seq uint64)
	LastSeq() uint64
	IncrResubscribes()
}

// SubscriptionWorker owns the change feed of the messages collection and routes each
// event to the partition of its conversation. A closed feed is returned as
// ErrSubscriptionClosed so the supervisor resubscribes from the last routed sequence.
type SubscriptionWorker struct {
	store      contract.IDocumentStore
	partitions []*PartitionWorker
	cursor     Cursor
	health     HealthReporter
	log        *slog.Logger
	started    bool
}

func NewSubscriptionWorker(
	store contract.IDocumentStore,
	partitions []*PartitionWorker,
	cursor Cursor,
	health HealthReporter,
	log *slog.Logger,
) *SubscriptionWorker {
	return &SubscriptionWorker{
		store:      store,
		partitions: partitions,
		cursor:     cursor,
		health:     health,
		log:        log,
	}
}

func (w *SubscriptionWorker) Run(ctx context.Context) error {
	if w.started {
		w.cursor.IncrResubscribes()
	}
	w.started = true

	from := w.cursor.LastSeq()
	feed, err := w.store.Subscribe(ctx, domain.MessagesCollection, from)
	if err != nil {
		w.setServing(false)
		return err
	}
	w.log.Info("Subscribed to change feed", "collection", domain.MessagesCollection, "seq", from)
	w.setServing(true)
	defer w.setServing(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-feed:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.log.Warn("Change feed closed", "seq", w.cursor.LastSeq())
				return errors.ErrSubscriptionClosed
			}
			partition := w.partitions[w.route(evt)]
			w.cursor.Received(evt.Seq)
			if err := partition.Enqueue(ctx, evt); err != nil {
				return err
			}
		}
	}
}

// route hashes the conversation onto a partition. Events without a readable
// conversation go to the first partition, where the projector reports them.
func (w *SubscriptionWorker) route(evt domain.ChangeEvent) int {
	key, ok := evt.ConversationKey()
	if !ok {
		return 0
	}
	return int(key % uint(len(w.partitions)))
}

func (w *SubscriptionWorker) setServing(serving bool) {
	if w.health == nil {
		return
	}
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	w.health.SetServingStatus(HealthService, status)
}
