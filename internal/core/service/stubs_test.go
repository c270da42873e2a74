package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// Hand-rolled in-memory doubles for the repository ports.

func testLogger() zerolog.Logger { return zerolog.Nop() }

type auditRecorderStub struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *auditRecorderStub) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *auditRecorderStub) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type userRepoStub struct {
	byEmail   map[string]*domain.User
	byID      map[string]*domain.User
	findErr   error
	updateErr error
	updated   []*domain.User
}

func newUserRepoStub(users ...*domain.User) *userRepoStub {
	s := &userRepoStub{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
	for _, u := range users {
		s.byEmail[u.Email] = u
		s.byID[u.ID] = u
	}
	return s
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *userRepoStub) Update(ctx context.Context, user *domain.User) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, user)
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *userRepoStub) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, nil
}

type revocationStub struct {
	mu        sync.Mutex
	revoked   map[string]bool
	revokeErr error
	checkErr  error
}

func newRevocationStub() *revocationStub {
	return &revocationStub{revoked: make(map[string]bool)}
}

func (s *revocationStub) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sessionID] = true
	return nil
}

func (s *revocationStub) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[sessionID], nil
}

type disbursementRepoStub struct {
	byID      map[string]*domain.Disbursement
	listItems []*domain.Disbursement
	listTotal int64
	listErr   error
	createErr error
	updateErr error
	deleted   []string
}

func newDisbursementRepoStub(records ...*domain.Disbursement) *disbursementRepoStub {
	s := &disbursementRepoStub{byID: make(map[string]*domain.Disbursement)}
	for _, d := range records {
		s.byID[d.ID] = d
	}
	return s
}

func (s *disbursementRepoStub) Create(ctx context.Context, d *domain.Disbursement) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.byID[d.ID] = d
	return nil
}

func (s *disbursementRepoStub) FindByID(ctx context.Context, id string) (*domain.Disbursement, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrDisbursementNotFound
	}
	return d, nil
}

func (s *disbursementRepoStub) Update(ctx context.Context, d *domain.Disbursement) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.byID[d.ID] = d
	return nil
}

func (s *disbursementRepoStub) Delete(ctx context.Context, id string) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *disbursementRepoStub) List(ctx context.Context, filter ports.ListDisbursementsFilter) ([]*domain.Disbursement, int64, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	// Crude pagination over the canned item list, enough for the
	// export walker and the list use case.
	start := (filter.Page - 1) * filter.Limit
	if start >= len(s.listItems) {
		return nil, s.listTotal, nil
	}
	end := start + filter.Limit
	if end > len(s.listItems) {
		end = len(s.listItems)
	}
	return s.listItems[start:end], s.listTotal, nil
}

func (s *disbursementRepoStub) Stats(ctx context.Context, filter ports.ListDisbursementsFilter, now time.Time) (*ports.DisbursementStats, error) {
	return &ports.DisbursementStats{}, nil
}

type ruleRepoStub struct {
	rules   []*domain.ClassificationRule
	listErr error
	deleted []string
}

func (s *ruleRepoStub) Create(ctx context.Context, r *domain.ClassificationRule) error {
	s.rules = append(s.rules, r)
	return nil
}

func (s *ruleRepoStub) FindByID(ctx context.Context, id string) (*domain.ClassificationRule, error) {
	for _, r := range s.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

func (s *ruleRepoStub) Update(ctx context.Context, rule *domain.ClassificationRule) error {
	for i, r := range s.rules {
		if r.ID == rule.ID {
			s.rules[i] = rule
			return nil
		}
	}
	return domain.ErrRuleNotFound
}

func (s *ruleRepoStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *ruleRepoStub) List(ctx context.Context) ([]*domain.ClassificationRule, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rules, nil
}
