package ports

import (
	"context"
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// ListAuditFilter narrows the audit trail listing.
type ListAuditFilter struct {
	ActorID  string
	Action   string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	Limit    int
}

// AuditRepository defines persistence operations for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
	List(ctx context.Context, filter ListAuditFilter) ([]*domain.AuditEntry, int64, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence.
// Recording never fails the triggering operation.
type AuditRecorder interface {
	Record(e domain.AuditEntry)
}
