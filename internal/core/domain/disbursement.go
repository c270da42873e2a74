package domain

import "time"

// Classification is the budget classification of a disbursement.
type Classification string

const (
	ClassPersonalServices Classification = "PS"   // salaries, wages, compensation
	ClassOperatingExpense Classification = "MOOE" // maintenance and other operating expenses
	ClassCapitalOutlay    Classification = "CO"   // assets and infrastructure
	ClassTransfer         Classification = "TR"   // inter-agency transfers, subsidies
)

// Classifications lists every known classification code in display order.
var Classifications = []Classification{
	ClassPersonalServices,
	ClassOperatingExpense,
	ClassCapitalOutlay,
	ClassTransfer,
}

// ValidClassification reports whether c is a known classification code.
func ValidClassification(c Classification) bool {
	for _, known := range Classifications {
		if c == known {
			return true
		}
	}
	return false
}

// DisbursementStatus represents the approval state of a disbursement record.
type DisbursementStatus string

const (
	StatusPending  DisbursementStatus = "PENDING"
	StatusApproved DisbursementStatus = "APPROVED"
	StatusRejected DisbursementStatus = "REJECTED"
)

// CanTransitionTo reports whether a status change is allowed.
// Records only move out of PENDING; approved and rejected are terminal.
func (s DisbursementStatus) CanTransitionTo(next DisbursementStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}

// Mutable reports whether the record may still be edited or deleted.
func (s DisbursementStatus) Mutable() bool {
	return s == StatusPending
}

// Disbursement is a single fund-disbursement record.
type Disbursement struct {
	ID              string             `bson:"_id" json:"id"`
	Payee           string             `bson:"payee" json:"payee"`
	Amount          float64            `bson:"amount" json:"amount"`
	Date            time.Time          `bson:"date" json:"date"`
	FundSource      string             `bson:"fund_source" json:"fund_source"`
	Classification  Classification     `bson:"classification" json:"classification"`
	Description     string             `bson:"description" json:"description"`
	Department      string             `bson:"department" json:"department"`
	ReferenceNumber string             `bson:"reference_number,omitempty" json:"reference_number,omitempty"`
	Status          DisbursementStatus `bson:"status" json:"status"`
	Archived        bool               `bson:"archived" json:"archived"`
	CreatedBy       string             `bson:"created_by" json:"created_by"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	ApprovedBy      string             `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time         `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
	RejectedBy      string             `bson:"rejected_by,omitempty" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time         `bson:"rejected_at,omitempty" json:"rejected_at,omitempty"`
	RejectionReason string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
}
