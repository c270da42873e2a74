package handler

import (
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

const dateLayout = "2006-01-02"

func toDisbursementResponse(d *domain.Disbursement) disbursementResponse {
	return disbursementResponse{
		ID:              d.ID,
		Payee:           d.Payee,
		Amount:          d.Amount,
		Date:            d.Date.Format(dateLayout),
		FundSource:      d.FundSource,
		Classification:  string(d.Classification),
		Description:     d.Description,
		Department:      d.Department,
		ReferenceNumber: d.ReferenceNumber,
		Status:          string(d.Status),
		Archived:        d.Archived,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectedBy:      d.RejectedBy,
		RejectedAt:      d.RejectedAt,
		RejectionReason: d.RejectionReason,
	}
}

func toListDisbursementsResponse(items []*domain.Disbursement, total int64, page, limit, totalPages int) listDisbursementsResponse {
	data := make([]disbursementResponse, 0, len(items))
	for _, d := range items {
		data = append(data, toDisbursementResponse(d))
	}
	return listDisbursementsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}

// parseDate parses a YYYY-MM-DD value; the zero time means "not given".
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}
