package ports

import (
	"context"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// RuleRepository defines persistence operations for classification rules.
type RuleRepository interface {
	Create(ctx context.Context, r *domain.ClassificationRule) error
	FindByID(ctx context.Context, id string) (*domain.ClassificationRule, error)
	Update(ctx context.Context, r *domain.ClassificationRule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.ClassificationRule, error)
}

// SuggestInput describes an entry to be classified.
type SuggestInput struct {
	Payee       string
	Description string
	Amount      float64
	Department  string
}

// RuleInput carries the editable fields of a classification rule.
type RuleInput struct {
	Name           string
	Description    string
	Classification domain.Classification
	Keywords       []string
	AmountRange    *domain.AmountRange
	Department     string
	IsActive       bool
}

// ClassificationService manages rules and produces suggestions.
type ClassificationService interface {
	Suggest(ctx context.Context, input SuggestInput) (*domain.Suggestion, error)
	CreateRule(ctx context.Context, actor *domain.User, input RuleInput) (*domain.ClassificationRule, error)
	UpdateRule(ctx context.Context, actor *domain.User, id string, input RuleInput) (*domain.ClassificationRule, error)
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context) ([]*domain.ClassificationRule, error)
}
