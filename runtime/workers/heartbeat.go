package workers

import (
	"chat-mirror/domain"
	"chat-mirror/observability"
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/process"
)

// HeartbeatWorker periodically logs the process health next to the projection counters.
type HeartbeatWorker struct {
	log        *slog.Logger
	stats      *observability.ProjectionStats
	partitions []*PartitionWorker
	interval   time.Duration
}

func NewHeartbeatWorker(
	log *slog.Logger,
	stats *observability.ProjectionStats,
	partitions []*PartitionWorker,
	interval time.Duration,
) *HeartbeatWorker {
	return &HeartbeatWorker{
		log:        log,
		stats:      stats,
		partitions: partitions,
		interval:   interval,
	}
}

// Run executes the main loop of the worker, reporting health metrics (CPU, RAM, Status) every interval.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.stats.UpdateQueues(lo.Map(w.partitions, func(pw *PartitionWorker, _ int) int { return pw.QueueSize() }))
			rss, cpu, status, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			latest := w.stats.GetLatest()
			w.log.Info("Heartbeat",
				"pid", domain.PID(os.Getpid()),
				"pid_status", domain.ToStatus(status),
				"cpu_percent", cpu,
				"ram_bytes", rss,
				"received", latest.Received,
				"in_flight", latest.InFlight,
				"last_seq", latest.LastSeq,
				"queue_sizes", latest.QueueSizes,
			)
		}
	}
}

// getSelfStats retrieves technical metrics (Memory, CPU, and OS Status) for the given process.
func getSelfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
