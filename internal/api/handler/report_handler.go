package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// ReportHandler serves aggregate statistics and CSV exports.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Stats handles GET /v1/reports/stats. It accepts the same filter
// query parameters as the disbursement listing.
//
// @Summary      Aggregate disbursement statistics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        classification  query     string  false  "PS, MOOE, CO, or TR"
// @Param        department      query     string  false  "Department filter"
// @Param        date_from       query     string  false  "YYYY-MM-DD inclusive lower bound"
// @Param        date_to         query     string  false  "YYYY-MM-DD inclusive upper bound"
// @Success      200             {object}  ports.DisbursementStats
// @Failure      400             {object}  errorResponse
// @Router       /v1/reports/stats [get]
func (h *ReportHandler) Stats(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Export handles GET /v1/reports/export, streaming the filtered record
// set as a CSV attachment.
//
// @Summary      Export disbursements as CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        classification  query  string  false  "PS, MOOE, CO, or TR"
// @Param        department      query  string  false  "Department filter"
// @Param        date_from       query  string  false  "YYYY-MM-DD inclusive lower bound"
// @Param        date_to         query  string  false  "YYYY-MM-DD inclusive upper bound"
// @Success      200  {string}  string  "CSV body"
// @Failure      400  {object}  errorResponse
// @Router       /v1/reports/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("disbursements-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.service.ExportCSV(c.Request().Context(), filter, c.Response())
}
