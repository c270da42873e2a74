package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

type auditRepoStub struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (s *auditRepoStub) Insert(ctx context.Context, e *domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *auditRepoStub) List(ctx context.Context, filter ports.ListAuditFilter) ([]*domain.AuditEntry, int64, error) {
	return nil, 0, nil
}

func (s *auditRepoStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *auditRepoStub) forActor(actorID string) []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AuditEntry
	for _, e := range s.entries {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcher_PersistsEntries(t *testing.T) {
	repo := &auditRepoStub{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditCreated})
	}

	waitFor(t, func() bool { return repo.count() == 10 })
}

func TestDispatcher_SameActorSameWorker(t *testing.T) {
	d := NewAuditDispatcher(4, &auditRepoStub{}, zerolog.Nop())

	first := d.shardIndex("actor-42")
	for i := 0; i < 100; i++ {
		if d.shardIndex("actor-42") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestDispatcher_OrderPreservedPerActor(t *testing.T) {
	repo := &auditRepoStub{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []string{domain.AuditCreated, domain.AuditUpdated, domain.AuditApproved, domain.AuditArchived}
	for _, a := range actions {
		d.Record(domain.AuditEntry{ActorID: "u1", Action: a})
	}

	waitFor(t, func() bool { return len(repo.forActor("u1")) == len(actions) })

	got := repo.forActor("u1")
	for i, a := range actions {
		if got[i].Action != a {
			t.Fatalf("actor trail out of order: %v", got)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewAuditDispatcher(0, &auditRepoStub{}, zerolog.Nop())
	if len(d.Depths()) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.Depths()))
	}
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	repo := &auditRepoStub{}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	// Workers never started: the buffer fills and Record must not block.

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+50; i++ {
			d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full queue")
	}

	if depth := d.Depths()[0]; depth != channelBuffer {
		t.Fatalf("queue depth = %d, want %d", depth, channelBuffer)
	}
}
