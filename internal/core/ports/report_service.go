package ports

import (
	"context"
	"io"
)

// ReportService produces aggregates and exports over the filtered
// record set. Both operations accept the same filter surface as the
// listing endpoint; pagination fields are ignored.
type ReportService interface {
	Stats(ctx context.Context, filter ListDisbursementsFilter) (*DisbursementStats, error)
	ExportCSV(ctx context.Context, filter ListDisbursementsFilter, w io.Writer) error
}
