package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher persists audit entries asynchronously through a fixed
// set of workers, sharded by actor ID so one actor's trail stays in
// order. Persistence failures are logged and never surface to the
// operation that produced the entry.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry on the worker responsible for its actor.
// When the worker's buffer is full the entry is dropped with a warning
// rather than blocking the caller.
func (d *AuditDispatcher) Record(e domain.AuditEntry) {
	select {
	case d.workers[d.shardIndex(e.ActorID)] <- e:
	default:
		d.log.Warn().Str("actor_id", e.ActorID).Str("action", e.Action).Msg("audit queue full, entry dropped")
	}
}

// Depths returns the current number of queued entries per worker.
func (d *AuditDispatcher) Depths() []int {
	depths := make([]int, len(d.workers))
	for i, ch := range d.workers {
		depths[i] = len(ch)
	}
	return depths
}

// shardIndex maps an actor ID deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &entry); err != nil {
				d.log.Error().Err(err).
					Str("actor_id", entry.ActorID).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit entry persistence failed")
			}
		}
	}
}
