package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// ReportService produces aggregate statistics and CSV exports over the
// disbursement records.
type ReportService struct {
	repo ports.DisbursementRepository
	log  zerolog.Logger
}

func NewReportService(repo ports.DisbursementRepository, log zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, log: log}
}

// Stats aggregates every record matching the filter.
func (s *ReportService) Stats(ctx context.Context, filter ports.ListDisbursementsFilter) (*ports.DisbursementStats, error) {
	return s.repo.Stats(ctx, filter, time.Now().UTC())
}

var csvHeader = []string{
	"id", "payee", "amount", "date", "fund_source", "classification",
	"description", "department", "reference_number", "status",
	"created_by", "created_at",
}

// ExportCSV streams every record matching the filter to w as CSV, one
// header row plus one row per record. Pagination on the filter is
// ignored; the export walks all pages.
func (s *ReportService) ExportCSV(ctx context.Context, filter ports.ListDisbursementsFilter, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	filter.Page = 1
	filter.Limit = maxPageLimit
	for {
		items, total, err := s.repo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("export page %d: %w", filter.Page, err)
		}

		for _, d := range items {
			row := []string{
				d.ID,
				d.Payee,
				strconv.FormatFloat(d.Amount, 'f', 2, 64),
				d.Date.Format("2006-01-02"),
				d.FundSource,
				string(d.Classification),
				d.Description,
				d.Department,
				d.ReferenceNumber,
				string(d.Status),
				d.CreatedBy,
				d.CreatedAt.Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}

		if int64(filter.Page*filter.Limit) >= total || len(items) == 0 {
			break
		}
		filter.Page++
	}

	cw.Flush()
	return cw.Error()
}
