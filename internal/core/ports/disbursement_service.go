package ports

import (
	"context"
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// CreateDisbursementInput carries all data needed to record a new disbursement.
type CreateDisbursementInput struct {
	Payee           string
	Amount          float64
	Date            time.Time
	FundSource      string
	Classification  domain.Classification
	Description     string
	Department      string
	ReferenceNumber string
}

// UpdateDisbursementInput mirrors CreateDisbursementInput for edits of
// a pending record.
type UpdateDisbursementInput struct {
	ID              string
	Payee           string
	Amount          float64
	Date            time.Time
	FundSource      string
	Classification  domain.Classification
	Description     string
	Department      string
	ReferenceNumber string
}

// ListDisbursementsResult is returned by List.
type ListDisbursementsResult struct {
	Items      []*domain.Disbursement
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DisbursementService defines the use-case operations on disbursement
// records. The actor is the authenticated user; ownership and role
// rules beyond the route guard (e.g. delete-own-pending) are enforced
// here.
type DisbursementService interface {
	Create(ctx context.Context, actor *domain.User, input CreateDisbursementInput) (*domain.Disbursement, error)
	Get(ctx context.Context, id string) (*domain.Disbursement, error)
	Update(ctx context.Context, actor *domain.User, input UpdateDisbursementInput) (*domain.Disbursement, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	Approve(ctx context.Context, actor *domain.User, id string) (*domain.Disbursement, error)
	Reject(ctx context.Context, actor *domain.User, id, reason string) (*domain.Disbursement, error)
	Archive(ctx context.Context, actor *domain.User, id string) (*domain.Disbursement, error)
	Restore(ctx context.Context, actor *domain.User, id string) (*domain.Disbursement, error)
	List(ctx context.Context, filter ListDisbursementsFilter) (*ListDisbursementsResult, error)
}
