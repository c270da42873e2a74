package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

func admin() *domain.User {
	return &domain.User{ID: "admin-1", Email: "admin@agency.gov", Role: domain.RoleAdmin, IsActive: true}
}

func encoder() *domain.User {
	return &domain.User{ID: "enc-1", Email: "enc@agency.gov", Role: domain.RoleEncoder, IsActive: true}
}

func pendingRecord(id, createdBy string) *domain.Disbursement {
	return &domain.Disbursement{
		ID:             id,
		Payee:          "Acme Supplies",
		Amount:         1500,
		Date:           time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		FundSource:     "General Fund",
		Classification: domain.ClassOperatingExpense,
		Status:         domain.StatusPending,
		CreatedBy:      createdBy,
	}
}

func newTestDisbursementService(records ...*domain.Disbursement) (*DisbursementService, *disbursementRepoStub, *auditRecorderStub) {
	repo := newDisbursementRepoStub(records...)
	audit := &auditRecorderStub{}
	return NewDisbursementService(repo, audit, testLogger()), repo, audit
}

func TestCreate_StartsPending(t *testing.T) {
	svc, repo, audit := newTestDisbursementService()

	d, err := svc.Create(context.Background(), encoder(), ports.CreateDisbursementInput{
		Payee:          "Acme Supplies",
		Amount:         2500,
		Date:           time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		FundSource:     "General Fund",
		Classification: domain.ClassCapitalOutlay,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Status != domain.StatusPending {
		t.Fatalf("new record status = %s, want PENDING", d.Status)
	}
	if d.ID == "" {
		t.Fatalf("record got no ID")
	}
	if d.CreatedBy != "enc-1" {
		t.Fatalf("CreatedBy = %s", d.CreatedBy)
	}
	if _, ok := repo.byID[d.ID]; !ok {
		t.Fatalf("record not persisted")
	}
	if got := audit.actions(); len(got) != 1 || got[0] != domain.AuditCreated {
		t.Fatalf("expected CREATED audit entry, got %v", got)
	}
}

func TestCreate_RejectsUnknownClassification(t *testing.T) {
	svc, _, _ := newTestDisbursementService()

	_, err := svc.Create(context.Background(), encoder(), ports.CreateDisbursementInput{
		Payee:          "Acme",
		Amount:         100,
		Classification: "SALARIES",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected classification rejection, got %v", err)
	}
}

func TestUpdate_OnlyWhilePending(t *testing.T) {
	approved := pendingRecord("d1", "enc-1")
	approved.Status = domain.StatusApproved
	svc, _, _ := newTestDisbursementService(approved)

	_, err := svc.Update(context.Background(), encoder(), ports.UpdateDisbursementInput{
		ID:             "d1",
		Payee:          "Changed",
		Amount:         1,
		Classification: domain.ClassOperatingExpense,
	})
	if !errors.Is(err, domain.ErrRecordImmutable) {
		t.Fatalf("expected ErrRecordImmutable, got %v", err)
	}
}

func TestApprove_PendingBecomesTerminal(t *testing.T) {
	svc, _, audit := newTestDisbursementService(pendingRecord("d1", "enc-1"))
	actor := admin()

	d, err := svc.Approve(context.Background(), actor, "d1")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if d.Status != domain.StatusApproved {
		t.Fatalf("status = %s", d.Status)
	}
	if d.ApprovedBy != actor.ID || d.ApprovedAt == nil {
		t.Fatalf("approval fields not set: %+v", d)
	}

	// Terminal: a second transition must fail.
	if _, err := svc.Approve(context.Background(), actor, "d1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("approving twice should fail, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), actor, "d1", "late"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("rejecting an approved record should fail, got %v", err)
	}

	if got := audit.actions(); len(got) != 1 || got[0] != domain.AuditApproved {
		t.Fatalf("expected one APPROVED entry, got %v", got)
	}
}

func TestReject_RequiresReason(t *testing.T) {
	svc, _, _ := newTestDisbursementService(pendingRecord("d1", "enc-1"))

	if _, err := svc.Reject(context.Background(), admin(), "d1", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty reason should be rejected, got %v", err)
	}

	d, err := svc.Reject(context.Background(), admin(), "d1", "duplicate entry")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if d.Status != domain.StatusRejected || d.RejectionReason != "duplicate entry" {
		t.Fatalf("rejection not recorded: %+v", d)
	}
	if d.RejectedBy != "admin-1" || d.RejectedAt == nil {
		t.Fatalf("rejection fields not set: %+v", d)
	}
}

func TestDelete_EncoderOwnRecordOnly(t *testing.T) {
	svc, repo, _ := newTestDisbursementService(
		pendingRecord("own", "enc-1"),
		pendingRecord("other", "enc-2"),
	)

	if err := svc.Delete(context.Background(), encoder(), "other"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("deleting another encoder's record should be forbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), encoder(), "own"); err != nil {
		t.Fatalf("deleting own record: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "own" {
		t.Fatalf("deleted = %v", repo.deleted)
	}
}

func TestDelete_AdminDeletesAnyPending(t *testing.T) {
	svc, _, _ := newTestDisbursementService(pendingRecord("d1", "enc-2"))
	if err := svc.Delete(context.Background(), admin(), "d1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestDelete_ImmutableOnceDecided(t *testing.T) {
	rejected := pendingRecord("d1", "enc-1")
	rejected.Status = domain.StatusRejected
	svc, _, _ := newTestDisbursementService(rejected)

	if err := svc.Delete(context.Background(), admin(), "d1"); !errors.Is(err, domain.ErrRecordImmutable) {
		t.Fatalf("expected ErrRecordImmutable, got %v", err)
	}
}

func TestArchiveRestore_TogglesFlag(t *testing.T) {
	svc, _, audit := newTestDisbursementService(pendingRecord("d1", "enc-1"))

	d, err := svc.Archive(context.Background(), admin(), "d1")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !d.Archived {
		t.Fatalf("record not archived")
	}

	// Archiving an archived record is a no-op, not an error.
	if _, err := svc.Archive(context.Background(), admin(), "d1"); err != nil {
		t.Fatalf("re-archive: %v", err)
	}

	d, err = svc.Restore(context.Background(), admin(), "d1")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if d.Archived {
		t.Fatalf("record still archived after restore")
	}

	got := audit.actions()
	if len(got) != 2 || got[0] != domain.AuditArchived || got[1] != domain.AuditRestored {
		t.Fatalf("expected [ARCHIVED RESTORED], got %v", got)
	}
}

func TestList_PaginationDefaultsAndCap(t *testing.T) {
	svc, repo, _ := newTestDisbursementService()
	repo.listTotal = 250

	result, err := svc.List(context.Background(), ports.ListDisbursementsFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Fatalf("defaults: page=%d limit=%d", result.Page, result.Limit)
	}
	if result.TotalPages != 13 {
		t.Fatalf("total pages = %d, want 13", result.TotalPages)
	}

	result, err = svc.List(context.Background(), ports.ListDisbursementsFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Limit != 100 {
		t.Fatalf("limit not capped: %d", result.Limit)
	}
}
