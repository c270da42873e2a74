package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// Suggestion scoring weights. A keyword hit in the payee or description
// is the strongest signal; amount range and department are tie-breakers.
const (
	keywordScore    = 20
	amountBandScore = 10
	departmentScore = 15
	confidenceCap   = 95

	defaultConfidence = 30
)

// ClassificationService manages classification rules and scores
// entries against them.
type ClassificationService struct {
	rules ports.RuleRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewClassificationService(rules ports.RuleRepository, audit ports.AuditRecorder, log zerolog.Logger) *ClassificationService {
	return &ClassificationService{rules: rules, audit: audit, log: log}
}

// Suggest scores the entry against every active rule and returns the
// best match. When no rule beats the default confidence, the entry
// falls back to MOOE — the catch-all operating-expense class.
func (s *ClassificationService) Suggest(ctx context.Context, input ports.SuggestInput) (*domain.Suggestion, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, err
	}

	best := &domain.Suggestion{
		Classification: domain.ClassOperatingExpense,
		Confidence:     defaultConfidence,
		Reason:         "Default classification",
		MatchedRules:   []string{},
	}

	description := strings.ToLower(input.Description)
	payee := strings.ToLower(input.Payee)

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}

		score := 0
		for _, keyword := range rule.Keywords {
			k := strings.ToLower(keyword)
			if strings.Contains(description, k) || strings.Contains(payee, k) {
				score += keywordScore
			}
		}

		if rule.AmountRange != nil {
			if rule.AmountRange.Min != nil && input.Amount >= *rule.AmountRange.Min {
				score += amountBandScore
			}
			if rule.AmountRange.Max != nil && input.Amount <= *rule.AmountRange.Max {
				score += amountBandScore
			}
		}

		if rule.Department != "" && rule.Department == input.Department {
			score += departmentScore
		}

		if score > best.Confidence {
			best = &domain.Suggestion{
				Classification: rule.Classification,
				Confidence:     min(score, confidenceCap),
				Reason:         fmt.Sprintf("Matched rule: %s", rule.Name),
				MatchedRules:   []string{rule.Name},
			}
		}
	}

	return best, nil
}

func (s *ClassificationService) CreateRule(ctx context.Context, actor *domain.User, input ports.RuleInput) (*domain.ClassificationRule, error) {
	if input.Name == "" || !domain.ValidClassification(input.Classification) {
		return nil, fmt.Errorf("%w: rule needs a name and a known classification", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	rule := &domain.ClassificationRule{
		ID:             uuid.NewString(),
		Name:           input.Name,
		Description:    input.Description,
		Classification: input.Classification,
		Keywords:       input.Keywords,
		AmountRange:    input.AmountRange,
		Department:     input.Department,
		IsActive:       input.IsActive,
		CreatedBy:      actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.log.Info().Str("rule", rule.Name).Str("classification", string(rule.Classification)).Msg("classification rule created")
	return rule, nil
}

func (s *ClassificationService) UpdateRule(ctx context.Context, actor *domain.User, id string, input ports.RuleInput) (*domain.ClassificationRule, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.ValidClassification(input.Classification) {
		return nil, fmt.Errorf("%w: unknown classification %q", domain.ErrInvalidInput, input.Classification)
	}

	rule.Name = input.Name
	rule.Description = input.Description
	rule.Classification = input.Classification
	rule.Keywords = input.Keywords
	rule.AmountRange = input.AmountRange
	rule.Department = input.Department
	rule.IsActive = input.IsActive
	rule.UpdatedAt = time.Now().UTC()

	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *ClassificationService) DeleteRule(ctx context.Context, id string) error {
	return s.rules.Delete(ctx, id)
}

func (s *ClassificationService) ListRules(ctx context.Context) ([]*domain.ClassificationRule, error) {
	return s.rules.List(ctx)
}
