package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/govtrack/disbursement-system/internal/core/access"
	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

const maxPageLimit = 100

// DisbursementService implements the disbursement record lifecycle:
// create, edit while pending, approve/reject, archive.
type DisbursementService struct {
	repo  ports.DisbursementRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewDisbursementService(repo ports.DisbursementRepository, audit ports.AuditRecorder, log zerolog.Logger) *DisbursementService {
	return &DisbursementService{repo: repo, audit: audit, log: log}
}

func (s *DisbursementService) Create(ctx context.Context, actor *domain.User, input ports.CreateDisbursementInput) (*domain.Disbursement, error) {
	if !domain.ValidClassification(input.Classification) {
		return nil, fmt.Errorf("%w: unknown classification %q", domain.ErrInvalidInput, input.Classification)
	}

	now := time.Now().UTC()
	d := &domain.Disbursement{
		ID:              uuid.NewString(),
		Payee:           input.Payee,
		Amount:          input.Amount,
		Date:            input.Date,
		FundSource:      input.FundSource,
		Classification:  input.Classification,
		Description:     input.Description,
		Department:      input.Department,
		ReferenceNumber: input.ReferenceNumber,
		Status:          domain.StatusPending,
		CreatedBy:       actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error().Err(err).Msg("failed to create disbursement")
		return nil, err
	}

	s.recordAudit(actor, domain.AuditCreated, d.ID, d.Payee)
	s.log.Info().Str("id", d.ID).Str("classification", string(d.Classification)).Float64("amount", d.Amount).Msg("disbursement created")
	return d, nil
}

func (s *DisbursementService) Get(ctx context.Context, id string) (*domain.Disbursement, error) {
	return s.repo.FindByID(ctx, id)
}

// Update edits a record that is still pending. Approved and rejected
// records are immutable.
func (s *DisbursementService) Update(ctx context.Context, actor *domain.User, input ports.UpdateDisbursementInput) (*domain.Disbursement, error) {
	d, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !d.Status.Mutable() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrRecordImmutable, d.Status)
	}
	if !domain.ValidClassification(input.Classification) {
		return nil, fmt.Errorf("%w: unknown classification %q", domain.ErrInvalidInput, input.Classification)
	}

	d.Payee = input.Payee
	d.Amount = input.Amount
	d.Date = input.Date
	d.FundSource = input.FundSource
	d.Classification = input.Classification
	d.Description = input.Description
	d.Department = input.Department
	d.ReferenceNumber = input.ReferenceNumber
	d.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	s.recordAudit(actor, domain.AuditUpdated, d.ID, d.Payee)
	return d, nil
}

// Delete removes a pending record. Admins may delete any pending
// record; encoders only their own.
func (s *DisbursementService) Delete(ctx context.Context, actor *domain.User, id string) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !d.Status.Mutable() {
		return fmt.Errorf("%w: status is %s", domain.ErrRecordImmutable, d.Status)
	}
	if !access.HasRole(actor, domain.RoleAdmin) && d.CreatedBy != actor.ID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(actor, domain.AuditDeleted, d.ID, d.Payee)
	return nil
}

func (s *DisbursementService) Approve(ctx context.Context, actor *domain.User, id string) (*domain.Disbursement, error) {
	return s.transition(ctx, actor, id, domain.StatusApproved, "")
}

func (s *DisbursementService) Reject(ctx context.Context, actor *domain.User, id, reason string) (*domain.Disbursement, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection requires a reason", domain.ErrInvalidInput)
	}
	return s.transition(ctx, actor, id, domain.StatusRejected, reason)
}

func (s *DisbursementService) Archive(ctx context.Context, actor *domain.User, id string) (*domain.Disbursement, error) {
	return s.setArchived(ctx, actor, id, true)
}

func (s *DisbursementService) Restore(ctx context.Context, actor *domain.User, id string) (*domain.Disbursement, error) {
	return s.setArchived(ctx, actor, id, false)
}

func (s *DisbursementService) List(ctx context.Context, filter ports.ListDisbursementsFilter) (*ports.ListDisbursementsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListDisbursementsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *DisbursementService) transition(ctx context.Context, actor *domain.User, id string, next domain.DisbursementStatus, reason string) (*domain.Disbursement, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !d.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, d.Status, next)
	}

	now := time.Now().UTC()
	d.Status = next
	d.UpdatedAt = now
	switch next {
	case domain.StatusApproved:
		d.ApprovedBy = actor.ID
		d.ApprovedAt = &now
	case domain.StatusRejected:
		d.RejectedBy = actor.ID
		d.RejectedAt = &now
		d.RejectionReason = reason
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	action := domain.AuditApproved
	if next == domain.StatusRejected {
		action = domain.AuditRejected
	}
	s.recordAudit(actor, action, d.ID, d.Payee)
	s.log.Info().Str("id", d.ID).Str("status", string(next)).Str("actor", actor.ID).Msg("disbursement transitioned")
	return d, nil
}

func (s *DisbursementService) setArchived(ctx context.Context, actor *domain.User, id string, archived bool) (*domain.Disbursement, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Archived == archived {
		return d, nil
	}

	d.Archived = archived
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	action := domain.AuditArchived
	if !archived {
		action = domain.AuditRestored
	}
	s.recordAudit(actor, action, d.ID, d.Payee)
	return d, nil
}

func (s *DisbursementService) recordAudit(actor *domain.User, action, entityID, detail string) {
	s.audit.Record(domain.AuditEntry{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     action,
		EntityType: "Disbursement",
		EntityID:   entityID,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	})
}
