package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/api/metrics"
	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
)

// ClassificationHandler exposes suggestion scoring and rule management.
type ClassificationHandler struct {
	service ports.ClassificationService
}

func NewClassificationHandler(service ports.ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{service: service}
}

type suggestRequest struct {
	Payee       string  `json:"payee"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount"      validate:"gte=0"`
	Department  string  `json:"department"`
}

type amountRangeRequest struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type ruleRequest struct {
	Name           string              `json:"name"           validate:"required"`
	Description    string              `json:"description"`
	Classification string              `json:"classification" validate:"required,oneof=PS MOOE CO TR"`
	Keywords       []string            `json:"keywords"       validate:"required,min=1"`
	AmountRange    *amountRangeRequest `json:"amount_range"`
	Department     string              `json:"department"`
	IsActive       bool                `json:"is_active"`
}

type listRulesResponse struct {
	Data []*domain.ClassificationRule `json:"data"`
}

// Suggest handles POST /v1/classify/suggest.
//
// @Summary      Suggest a classification for an entry
// @Tags         classification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      suggestRequest  true  "Entry to classify"
// @Success      200   {object}  domain.Suggestion
// @Failure      400   {object}  errorResponse
// @Router       /v1/classify/suggest [post]
func (h *ClassificationHandler) Suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	suggestion, err := h.service.Suggest(c.Request().Context(), ports.SuggestInput{
		Payee:       req.Payee,
		Description: req.Description,
		Amount:      req.Amount,
		Department:  req.Department,
	})
	if err != nil {
		return err
	}

	metrics.SuggestionConfidence.
		WithLabelValues(string(suggestion.Classification)).
		Observe(float64(suggestion.Confidence))

	return c.JSON(http.StatusOK, suggestion)
}

// CreateRule handles POST /v1/classification-rules.
//
// @Summary      Create a classification rule
// @Tags         classification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ruleRequest  true  "Rule definition"
// @Success      201   {object}  domain.ClassificationRule
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/classification-rules [post]
func (h *ClassificationHandler) CreateRule(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	input, err := bindRuleInput(c)
	if err != nil {
		return err
	}

	rule, err := h.service.CreateRule(c.Request().Context(), user, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rule)
}

// UpdateRule handles PUT /v1/classification-rules/:id.
//
// @Summary      Update a classification rule
// @Tags         classification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Rule ID"
// @Param        body  body      ruleRequest  true  "New rule definition"
// @Success      200   {object}  domain.ClassificationRule
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/classification-rules/{id} [put]
func (h *ClassificationHandler) UpdateRule(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	input, err := bindRuleInput(c)
	if err != nil {
		return err
	}

	rule, err := h.service.UpdateRule(c.Request().Context(), user, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteRule handles DELETE /v1/classification-rules/:id.
//
// @Summary      Delete a classification rule
// @Tags         classification
// @Security     BearerAuth
// @Param        id  path  string  true  "Rule ID"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/classification-rules/{id} [delete]
func (h *ClassificationHandler) DeleteRule(c echo.Context) error {
	if err := h.service.DeleteRule(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListRules handles GET /v1/classification-rules.
//
// @Summary      List classification rules
// @Tags         classification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listRulesResponse
// @Router       /v1/classification-rules [get]
func (h *ClassificationHandler) ListRules(c echo.Context) error {
	rules, err := h.service.ListRules(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listRulesResponse{Data: rules})
}

func bindRuleInput(c echo.Context) (ports.RuleInput, error) {
	var req ruleRequest
	if err := c.Bind(&req); err != nil {
		return ports.RuleInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.RuleInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.RuleInput{
		Name:           req.Name,
		Description:    req.Description,
		Classification: domain.Classification(req.Classification),
		Keywords:       req.Keywords,
		Department:     req.Department,
		IsActive:       req.IsActive,
	}
	if req.AmountRange != nil {
		input.AmountRange = &domain.AmountRange{Min: req.AmountRange.Min, Max: req.AmountRange.Max}
	}
	return input, nil
}
