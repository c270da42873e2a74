package ports

import (
	"context"
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// ListDisbursementsFilter carries all query parameters for listing
// disbursement records.
type ListDisbursementsFilter struct {
	Classification string    // optional: PS, MOOE, CO, TR
	Department     string    // optional
	FundSource     string    // optional
	Status         string    // optional: PENDING, APPROVED, REJECTED
	CreatedBy      string    // optional: scope to one encoder
	Archived       *bool     // nil = both, otherwise filter on archived flag
	Search         string    // optional: partial match on payee, description, reference_number
	DateFrom       time.Time // optional: date >= DateFrom
	DateTo         time.Time // optional: date <= DateTo
	Page           int       // 1-based
	Limit          int       // rows per page (capped at 100 by service)
}

// ClassificationBreakdown is the per-classification slice of the stats.
type ClassificationBreakdown struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// DisbursementStats aggregates the filtered record set.
type DisbursementStats struct {
	TotalCount     int64                                            `json:"total_count"`
	TotalAmount    float64                                          `json:"total_amount"`
	PendingCount   int64                                            `json:"pending_count"`
	ApprovedCount  int64                                            `json:"approved_count"`
	RejectedCount  int64                                            `json:"rejected_count"`
	MonthlyCount   int64                                            `json:"monthly_count"`
	MonthlyAmount  float64                                          `json:"monthly_amount"`
	Classification map[domain.Classification]ClassificationBreakdown `json:"classification_breakdown"`
}

// DisbursementRepository defines persistence operations for disbursements.
type DisbursementRepository interface {
	Create(ctx context.Context, d *domain.Disbursement) error
	FindByID(ctx context.Context, id string) (*domain.Disbursement, error)
	Update(ctx context.Context, d *domain.Disbursement) error
	Delete(ctx context.Context, id string) error
	// List returns a page of records matching filter and the total count.
	List(ctx context.Context, filter ListDisbursementsFilter) ([]*domain.Disbursement, int64, error)
	// Stats aggregates every record matching filter (pagination ignored).
	Stats(ctx context.Context, filter ListDisbursementsFilter, now time.Time) (*DisbursementStats, error)
}
