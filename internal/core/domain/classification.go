package domain

import "time"

// AmountRange optionally narrows a classification rule to an amount band.
// A nil Min or Max leaves that side unbounded.
type AmountRange struct {
	Min *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max *float64 `bson:"max,omitempty" json:"max,omitempty"`
}

// ClassificationRule drives automatic classification suggestions.
// Keywords are matched case-insensitively against payee and description.
type ClassificationRule struct {
	ID             string         `bson:"_id" json:"id"`
	Name           string         `bson:"name" json:"name"`
	Description    string         `bson:"description,omitempty" json:"description,omitempty"`
	Classification Classification `bson:"classification" json:"classification"`
	Keywords       []string       `bson:"keywords" json:"keywords"`
	AmountRange    *AmountRange   `bson:"amount_range,omitempty" json:"amount_range,omitempty"`
	Department     string         `bson:"department,omitempty" json:"department,omitempty"`
	IsActive       bool           `bson:"is_active" json:"is_active"`
	CreatedBy      string         `bson:"created_by" json:"created_by"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}

// Suggestion is the outcome of scoring an entry against the rule set.
type Suggestion struct {
	Classification Classification `json:"classification"`
	Confidence     int            `json:"confidence"`
	Reason         string         `json:"reason"`
	MatchedRules   []string       `json:"matched_rules"`
}
