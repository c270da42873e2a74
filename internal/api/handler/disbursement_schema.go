package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createDisbursementRequest struct {
	Payee           string  `json:"payee"            validate:"required"`
	Amount          float64 `json:"amount"           validate:"required,gt=0"`
	Date            string  `json:"date"             validate:"required,datetime=2006-01-02"`
	FundSource      string  `json:"fund_source"      validate:"required"`
	Classification  string  `json:"classification"   validate:"required,oneof=PS MOOE CO TR"`
	Description     string  `json:"description"      validate:"required"`
	Department      string  `json:"department"       validate:"required"`
	ReferenceNumber string  `json:"reference_number"`
}

type updateDisbursementRequest struct {
	Payee           string  `json:"payee"            validate:"required"`
	Amount          float64 `json:"amount"           validate:"required,gt=0"`
	Date            string  `json:"date"             validate:"required,datetime=2006-01-02"`
	FundSource      string  `json:"fund_source"      validate:"required"`
	Classification  string  `json:"classification"   validate:"required,oneof=PS MOOE CO TR"`
	Description     string  `json:"description"      validate:"required"`
	Department      string  `json:"department"       validate:"required"`
	ReferenceNumber string  `json:"reference_number"`
}

type rejectDisbursementRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from domain types so the JSON
// contract is not coupled to internal service changes.

type disbursementResponse struct {
	ID              string     `json:"id"`
	Payee           string     `json:"payee"`
	Amount          float64    `json:"amount"`
	Date            string     `json:"date"`
	FundSource      string     `json:"fund_source"`
	Classification  string     `json:"classification"`
	Description     string     `json:"description"`
	Department      string     `json:"department"`
	ReferenceNumber string     `json:"reference_number,omitempty"`
	Status          string     `json:"status"`
	Archived        bool       `json:"archived"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listDisbursementsResponse struct {
	Data       []disbursementResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
