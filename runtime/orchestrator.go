// Package runtime wires the change feed to the projector.
// It orchestrates the workers without containing projection rules.
package runtime

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"chat-mirror/observability"
	"chat-mirror/runtime/workers"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

const quiescePollInterval = 20 * time.Millisecond

type Orchestrator struct {
	mu                sync.Mutex
	log               *slog.Logger
	supervisor        contract.ISupervisor
	store             contract.IDocumentStore
	projector         contract.IProjector
	stats             *observability.ProjectionStats
	health            workers.HealthReporter
	sinks             []contract.ResultSink
	numPartitions     int
	bufferSize        int
	heartbeatInterval time.Duration

	checkpoints        contract.ICheckpointStore
	checkpointInterval time.Duration
	compactChanges     bool
}

type Option func(*Orchestrator)

// WithCheckpoint resumes the feed from the saved cursor and saves the projection
// watermark every interval, trimming the change log behind it when compact is set.
func WithCheckpoint(store contract.ICheckpointStore, interval time.Duration, compact bool) Option {
	return func(o *Orchestrator) {
		o.checkpoints = store
		o.checkpointInterval = interval
		o.compactChanges = compact
	}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	store contract.IDocumentStore, projector contract.IProjector,
	stats *observability.ProjectionStats, health workers.HealthReporter,
	numPartitions, bufferSize int, heartbeatInterval time.Duration, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		log:               log,
		supervisor:        supervisor,
		store:             store,
		projector:         projector,
		stats:             stats,
		health:            health,
		numPartitions:     max(numPartitions, 1),
		bufferSize:        bufferSize,
		heartbeatInterval: heartbeatInterval,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Add registers result sinks next to the projection stats. Call before Start.
func (o *Orchestrator) Add(sinks ...contract.ResultSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sinks = append(o.sinks, sinks...)
}

// Start builds the partitions, the subscription and the heartbeat, then runs them
// under the supervisor until ctx ends or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	o.resume()
	sinks := append([]contract.ResultSink{o.stats}, o.sinks...)
	partitions := lo.Times(o.numPartitions, func(i int) *workers.PartitionWorker {
		return workers.NewPartitionWorker(i, o.bufferSize, o.projector, o.log, sinks...)
	})
	o.supervisor.Add(workers.NewSubscriptionWorker(o.store, partitions, o.stats, o.health, o.log))
	for _, p := range partitions {
		o.supervisor.Add(p)
	}
	if o.heartbeatInterval > 0 {
		o.supervisor.Add(workers.NewHeartbeatWorker(o.log, o.stats, partitions, o.heartbeatInterval))
	}
	if o.checkpoints != nil && o.checkpointInterval > 0 {
		o.supervisor.Add(workers.NewCheckpointWorker(o.checkpoints, o.stats, domain.MessagesCollection,
			o.checkpointInterval, o.compactChanges, o.log))
	}
	o.mu.Unlock()

	o.log.Info("Starting orchestrator", "partitions", o.numPartitions)
	o.supervisor.Run(ctx)
}

// resume seeds the feed position with the saved cursor. Without one the whole log replays,
// which converges since replayed changes are skipped.
func (o *Orchestrator) resume() {
	if o.checkpoints == nil {
		return
	}
	seq, err := o.checkpoints.LoadCursor(domain.MessagesCollection)
	if err != nil {
		o.log.Error("Loading checkpoint failed, replaying the change log", "error", err)
		return
	}
	o.stats.Resume(seq)
	o.log.Info("Resuming change feed", "collection", domain.MessagesCollection, "seq", seq)
}

// Quiesce blocks until every routed event has been projected.
// Changes still in the feed are not counted.
func (o *Orchestrator) Quiesce(ctx context.Context) error {
	ticker := time.NewTicker(quiescePollInterval)
	defer ticker.Stop()
	for {
		if o.stats.InFlight() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Stop initiates a graceful shutdown of the orchestrator.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
