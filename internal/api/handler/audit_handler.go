package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// AuditHandler serves the audit trail to administrators.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type listAuditResponse struct {
	Data  []*domain.AuditEntry `json:"data"`
	Total int64                `json:"total"`
}

// List handles GET /v1/audit with actor, action, and time-range filters.
//
// @Summary      List audit trail entries
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        actor_id   query     string  false  "Actor user ID"
// @Param        action     query     string  false  "Audit action, e.g. LOGIN, APPROVED"
// @Param        date_from  query     string  false  "YYYY-MM-DD inclusive lower bound"
// @Param        date_to    query     string  false  "YYYY-MM-DD inclusive upper bound"
// @Param        page       query     int     false  "1-based page number"
// @Param        limit      query     int     false  "Rows per page"
// @Success      200        {object}  listAuditResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	var filter ports.ListAuditFilter
	filter.ActorID = c.QueryParam("actor_id")
	filter.Action = c.QueryParam("action")

	from, err := parseDate(c.QueryParam("date_from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_from must be YYYY-MM-DD")
	}
	filter.DateFrom = from

	to, err := parseDate(c.QueryParam("date_to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_to must be YYYY-MM-DD")
	}
	filter.DateTo = to

	if raw := c.QueryParam("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}

	entries, total, err := h.repo.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listAuditResponse{Data: entries, Total: total})
}
