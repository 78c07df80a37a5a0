package observability

import (
	"chat-mirror/contract"
	"chat-mirror/domain"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

const recentFailuresKept = 20

var _ contract.ResultSink = (*ProjectionStats)(nil)

// RecentFailure is a projection that did not apply nor skip.
type RecentFailure struct {
	Seq        uint64            `json:"seq"`
	Type       domain.ChangeType `json:"type"`
	DocumentID string            `json:"document_id"`
	Kind       domain.ResultKind `json:"kind"`
	Error      string            `json:"error"`
	Timestamp  string            `json:"timestamp"`
}

// Snapshot aggregates the projection metrics served on the debug endpoint.
type Snapshot struct {
	Results        map[domain.ChangeType]map[domain.ResultKind]uint64 `json:"results"`
	Received       uint64                                             `json:"received"`
	InFlight       int64                                              `json:"in_flight"`
	LastSeq        uint64                                             `json:"last_seq"`
	Watermark      uint64                                             `json:"watermark"`
	Resubscribes   uint64                                             `json:"resubscribes"`
	QueueSizes     []int                                              `json:"queue_sizes"`
	AllocMemMb     uint64                                             `json:"alloc_mem_mb"`
	NumGC          uint32                                             `json:"num_gc"`
	RecentFailures []RecentFailure                                    `json:"recent_failures"`
}

// ProjectionStats counts projection outcomes per change type and result kind.
type ProjectionStats struct {
	log          *slog.Logger
	mu           sync.RWMutex
	results      map[domain.ChangeType]map[domain.ResultKind]uint64
	recent       []RecentFailure
	pending      map[uint64]struct{}
	queueSizes   []int
	received     uint64
	inFlight     int64
	lastSeq      uint64
	resubscribes uint64
}

func NewProjectionStats(log *slog.Logger) *ProjectionStats {
	return &ProjectionStats{
		log:     log,
		results: make(map[domain.ChangeType]map[domain.ResultKind]uint64),
		recent:  make([]RecentFailure, 0),
		pending: make(map[uint64]struct{}),
	}
}

// Received marks an event as routed to a partition.
func (s *ProjectionStats) Received(seq uint64) {
	atomic.AddUint64(&s.received, 1)
	atomic.AddInt64(&s.inFlight, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[seq] = struct{}{}
	if seq > atomic.LoadUint64(&s.lastSeq) {
		atomic.StoreUint64(&s.lastSeq, seq)
	}
}

// Resume starts the feed position at a previously saved watermark.
func (s *ProjectionStats) Resume(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > atomic.LoadUint64(&s.lastSeq) {
		atomic.StoreUint64(&s.lastSeq, seq)
	}
}

// Watermark is the highest sequence below which every routed event has been recorded.
// Partitions finish out of order, so it trails LastSeq while events are in flight.
func (s *ProjectionStats) Watermark() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watermarkLocked()
}

func (s *ProjectionStats) watermarkLocked() uint64 {
	if len(s.pending) == 0 {
		return atomic.LoadUint64(&s.lastSeq)
	}
	oldest := lo.Min(lo.Keys(s.pending))
	if oldest == 0 {
		return 0
	}
	return oldest - 1
}

func (s *ProjectionStats) IncrResubscribes() {
	atomic.AddUint64(&s.resubscribes, 1)
}

// InFlight is the number of received events not yet recorded.
func (s *ProjectionStats) InFlight() int64 {
	return atomic.LoadInt64(&s.inFlight)
}

// LastSeq is the highest sequence routed so far, the resume point of a new subscription.
func (s *ProjectionStats) LastSeq() uint64 {
	return atomic.LoadUint64(&s.lastSeq)
}

func (s *ProjectionStats) Record(evt domain.ChangeEvent, result domain.ProjectionResult) {
	atomic.AddInt64(&s.inFlight, -1)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, evt.Seq)
	byKind, ok := s.results[result.Type]
	if !ok {
		byKind = make(map[domain.ResultKind]uint64)
		s.results[result.Type] = byKind
	}
	byKind[result.Kind]++

	if result.OK() {
		return
	}
	failure := RecentFailure{
		Seq:        evt.Seq,
		Type:       result.Type,
		DocumentID: result.DocumentID,
		Kind:       result.Kind,
		Timestamp:  time.Now().Format("15:04:05"),
	}
	if result.Err != nil {
		failure.Error = result.Err.Error()
	}
	s.recent = append([]RecentFailure{failure}, s.recent...)
	if len(s.recent) > recentFailuresKept {
		s.recent = s.recent[:recentFailuresKept]
	}
}

func (s *ProjectionStats) UpdateQueues(sizes []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queueSizes = append(s.queueSizes[:0], sizes...)
}

func (s *ProjectionStats) Count(changeType domain.ChangeType, kind domain.ResultKind) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[changeType][kind]
}

func (s *ProjectionStats) GetLatest() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make(map[domain.ChangeType]map[domain.ResultKind]uint64, len(s.results))
	for changeType, byKind := range s.results {
		copied := make(map[domain.ResultKind]uint64, len(byKind))
		for kind, n := range byKind {
			copied[kind] = n
		}
		results[changeType] = copied
	}
	return Snapshot{
		Results:        results,
		Received:       atomic.LoadUint64(&s.received),
		InFlight:       atomic.LoadInt64(&s.inFlight),
		LastSeq:        atomic.LoadUint64(&s.lastSeq),
		Watermark:      s.watermarkLocked(),
		Resubscribes:   atomic.LoadUint64(&s.resubscribes),
		QueueSizes:     append([]int(nil), s.queueSizes...),
		AllocMemMb:     m.Alloc / 1024 / 1024,
		NumGC:          m.NumGC,
		RecentFailures: append([]RecentFailure(nil), s.recent...),
	}
}
