package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/api/metrics"
	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// DisbursementHandler handles HTTP requests for disbursement records.
type DisbursementHandler struct {
	service ports.DisbursementService
}

func NewDisbursementHandler(service ports.DisbursementService) *DisbursementHandler {
	return &DisbursementHandler{service: service}
}

// Create handles POST /v1/disbursements.
//
// @Summary      Record a new disbursement
// @Tags         disbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDisbursementRequest  true  "Disbursement details"
// @Success      201   {object}  disbursementResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/disbursements [post]
func (h *DisbursementHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createDisbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	record, err := h.service.Create(c.Request().Context(), user, ports.CreateDisbursementInput{
		Payee:           req.Payee,
		Amount:          req.Amount,
		Date:            date,
		FundSource:      req.FundSource,
		Classification:  domain.Classification(req.Classification),
		Description:     req.Description,
		Department:      req.Department,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues(string(record.Classification)).Inc()
	return c.JSON(http.StatusCreated, toDisbursementResponse(record))
}

// Get handles GET /v1/disbursements/:id.
//
// @Summary      Get a disbursement by ID
// @Tags         disbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Disbursement ID"
// @Success      200  {object}  disbursementResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/disbursements/{id} [get]
func (h *DisbursementHandler) Get(c echo.Context) error {
	record, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDisbursementResponse(record))
}

// Update handles PUT /v1/disbursements/:id. Only pending records may change.
//
// @Summary      Update a pending disbursement
// @Tags         disbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Disbursement ID"
// @Param        body  body      updateDisbursementRequest  true  "New field values"
// @Success      200   {object}  disbursementResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/disbursements/{id} [put]
func (h *DisbursementHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateDisbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	record, err := h.service.Update(c.Request().Context(), user, ports.UpdateDisbursementInput{
		ID:              c.Param("id"),
		Payee:           req.Payee,
		Amount:          req.Amount,
		Date:            date,
		FundSource:      req.FundSource,
		Classification:  domain.Classification(req.Classification),
		Description:     req.Description,
		Department:      req.Department,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toDisbursementResponse(record))
}

// Delete handles DELETE /v1/disbursements/:id.
//
// @Summary      Delete a pending disbursement
// @Tags         disbursements
// @Security     BearerAuth
// @Param        id  path  string  true  "Disbursement ID"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/disbursements/{id} [delete]
func (h *DisbursementHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Approve handles POST /v1/disbursements/:id/approve.
//
// @Summary      Approve a pending disbursement
// @Tags         disbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Disbursement ID"
// @Success      200  {object}  disbursementResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/disbursements/{id}/approve [post]
func (h *DisbursementHandler) Approve(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	record, err := h.service.Approve(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RecordTransitionsTotal.WithLabelValues(string(record.Status)).Inc()
	return c.JSON(http.StatusOK, toDisbursementResponse(record))
}

// Reject handles POST /v1/disbursements/:id/reject. A reason is required.
//
// @Summary      Reject a pending disbursement
// @Tags         disbursements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Disbursement ID"
// @Param        body  body      rejectDisbursementRequest  true  "Rejection reason"
// @Success      200   {object}  disbursementResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/disbursements/{id}/reject [post]
func (h *DisbursementHandler) Reject(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req rejectDisbursementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.service.Reject(c.Request().Context(), user, c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	metrics.RecordTransitionsTotal.WithLabelValues(string(record.Status)).Inc()
	return c.JSON(http.StatusOK, toDisbursementResponse(record))
}

// Archive handles POST /v1/disbursements/:id/archive.
//
// @Summary      Archive a disbursement
// @Tags         disbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Disbursement ID"
// @Success      200  {object}  disbursementResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/disbursements/{id}/archive [post]
func (h *DisbursementHandler) Archive(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	record, err := h.service.Archive(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDisbursementResponse(record))
}

// Restore handles POST /v1/disbursements/:id/restore.
//
// @Summary      Restore an archived disbursement
// @Tags         disbursements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Disbursement ID"
// @Success      200  {object}  disbursementResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/disbursements/{id}/restore [post]
func (h *DisbursementHandler) Restore(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	record, err := h.service.Restore(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDisbursementResponse(record))
}

// List handles GET /v1/disbursements with filters and pagination.
//
// @Summary      List disbursements
// @Tags         disbursements
// @Produce      json
// @Security     BearerAuth
// @Param        classification  query     string  false  "PS, MOOE, CO, or TR"
// @Param        department      query     string  false  "Department filter"
// @Param        fund_source     query     string  false  "Fund source filter"
// @Param        status          query     string  false  "PENDING, APPROVED, or REJECTED"
// @Param        created_by      query     string  false  "Creator user ID"
// @Param        archived        query     bool    false  "Archived flag (omit for both)"
// @Param        search          query     string  false  "Partial match on payee, description, reference number"
// @Param        date_from       query     string  false  "YYYY-MM-DD inclusive lower bound"
// @Param        date_to         query     string  false  "YYYY-MM-DD inclusive upper bound"
// @Param        page            query     int     false  "1-based page number"
// @Param        limit           query     int     false  "Rows per page (max 100)"
// @Success      200             {object}  listDisbursementsResponse
// @Failure      400             {object}  errorResponse
// @Router       /v1/disbursements [get]
func (h *DisbursementHandler) List(c echo.Context) error {
	filter, err := parseListFilter(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListDisbursementsResponse(
		result.Items, result.Total, result.Page, result.Limit, result.TotalPages,
	))
}

// parseListFilter reads the shared listing query parameters. It is used
// by the list endpoint and by the report endpoints, which accept the
// same filter surface.
func parseListFilter(c echo.Context) (ports.ListDisbursementsFilter, error) {
	var filter ports.ListDisbursementsFilter

	filter.Classification = c.QueryParam("classification")
	filter.Department = c.QueryParam("department")
	filter.FundSource = c.QueryParam("fund_source")
	filter.Status = c.QueryParam("status")
	filter.CreatedBy = c.QueryParam("created_by")
	filter.Search = c.QueryParam("search")

	if raw := c.QueryParam("archived"); raw != "" {
		archived, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "archived must be true or false")
		}
		filter.Archived = &archived
	}

	from, err := parseDate(c.QueryParam("date_from"))
	if err != nil {
		return filter, echo.NewHTTPError(http.StatusBadRequest, "date_from must be YYYY-MM-DD")
	}
	filter.DateFrom = from

	to, err := parseDate(c.QueryParam("date_to"))
	if err != nil {
		return filter, echo.NewHTTPError(http.StatusBadRequest, "date_to must be YYYY-MM-DD")
	}
	filter.DateTo = to

	if raw := c.QueryParam("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}

	return filter, nil
}
