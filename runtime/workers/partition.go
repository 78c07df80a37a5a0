package workers

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/errors"
	"context"
	"fmt"
	"log/slog"
)

var _ contract.Worker = (*PartitionWorker)(nil)

// PartitionWorker is the single consumer of one partition of the change feed.
// Every event of a conversation lands on the same partition, so a conversation is
// projected in feed order while conversations proceed in parallel.
type PartitionWorker struct {
	id        int
	events    chan domain.ChangeEvent
	projector contract.IProjector
	sinks     []contract.ResultSink
	log       *slog.Logger
}

func NewPartitionWorker(id, bufferSize int, projector contract.IProjector, log *slog.Logger, sinks ...contract.ResultSink) *PartitionWorker {
	return &PartitionWorker{
		id:        id,
		events:    make(chan domain.ChangeEvent, bufferSize),
		projector: projector,
		sinks:     sinks,
		log:       log.With("partition", id),
	}
}

// Enqueue blocks while the partition is full, which back-pressures the subscription.
func (w *PartitionWorker) Enqueue(ctx context.Context, evt domain.ChangeEvent) error {
	select {
	case w.events <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *PartitionWorker) QueueSize() int {
	return len(w.events)
}

func (w *PartitionWorker) Run(ctx context.Context) error {
	w.log.Debug("Starting partition worker")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-w.events:
			result := w.apply(ctx, evt)
			for _, sink := range w.sinks {
				sink.Record(evt, result)
			}
		}
	}
}

// apply turns a projector panic into a failed result so the event is still accounted for.
func (w *PartitionWorker) apply(ctx context.Context, evt domain.ChangeEvent) (result domain.ProjectionResult) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Projection panicked", "seq", evt.Seq, "document_id", evt.DocumentID(), "error", r)
			result = domain.ProjectionResult{
				Seq:        evt.Seq,
				Type:       evt.Type,
				DocumentID: evt.DocumentID(),
				Kind:       domain.ResultFailed,
				Err:        fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r),
			}
		}
	}()
	return w.projector.Apply(ctx, evt)
}
