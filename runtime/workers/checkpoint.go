package workers

import (
	"chat-mirror/contract"
	"context"
	"log/slog"
	"time"
)

var _ contract.Worker = (*CheckpointWorker)(nil)

// Watermark reports the sequence up to which every routed event has been projected.
type Watermark interface {
	Watermark() uint64
}

// CheckpointWorker saves the projection watermark every interval and once more on
// shutdown, then optionally trims the change log behind it.
type CheckpointWorker struct {
	store      contract.ICheckpointStore
	watermark  Watermark
	collection string
	interval   time.Duration
	compact    bool
	log        *slog.Logger
	saved      uint64
}

func NewCheckpointWorker(
	store contract.ICheckpointStore,
	watermark Watermark,
	collection string,
	interval time.Duration,
	compact bool,
	log *slog.Logger,
) *CheckpointWorker {
	return &CheckpointWorker{
		store:      store,
		watermark:  watermark,
		collection: collection,
		interval:   interval,
		compact:    compact,
		log:        log,
	}
}

func (w *CheckpointWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := w.Flush(); err != nil {
				w.log.Error("Final checkpoint failed", "collection", w.collection, "error", err)
			}
			return ctx.Err()
		case <-ticker.C:
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}

// Flush saves the current watermark when it moved since the last save.
func (w *CheckpointWorker) Flush() error {
	seq := w.watermark.Watermark()
	if seq <= w.saved {
		return nil
	}
	if err := w.store.SaveCursor(w.collection, seq); err != nil {
		return err
	}
	w.saved = seq
	w.log.Debug("Checkpoint saved", "collection", w.collection, "seq", seq)
	if !w.compact {
		return nil
	}
	trimmed, err := w.store.TrimChanges(w.collection, seq)
	if err != nil {
		return err
	}
	if trimmed > 0 {
		w.log.Debug("Change log trimmed", "collection", w.collection, "upto", seq, "records", trimmed)
	}
	return nil
}
