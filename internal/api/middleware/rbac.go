package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/api/metrics"
	"github.com/govtrack/disbursement-system/internal/core/access"
	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// deniedResponse tells the client where the UI should send the user.
// The login and unauthorized destinations are deliberately distinct.
type deniedResponse struct {
	Error    string `json:"error"`
	Location string `json:"location"`
}

// RequireRoles guards a route group so only the given roles may pass.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return guard(access.Requirement{Roles: roles})
}

// RequireCapabilities guards a route group with capability checks.
func RequireCapabilities(caps ...access.Capability) echo.MiddlewareFunc {
	return guard(access.Requirement{Capabilities: caps})
}

// guard evaluates the requirement against the authenticated user on
// every request. Decisions are never cached across routes.
func guard(req access.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextKeyUser).(*domain.User)

			decision := access.Authorize(user, req)
			switch decision.Outcome {
			case access.RedirectLogin:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.JSON(http.StatusUnauthorized, deniedResponse{
					Error:    "authentication required",
					Location: decision.Location,
				})
			case access.RedirectUnauthorized:
				metrics.GuardDecisionsTotal.WithLabelValues("redirect_unauthorized").Inc()
				return c.JSON(http.StatusForbidden, deniedResponse{
					Error:    "access forbidden",
					Location: decision.Location,
				})
			}

			metrics.GuardDecisionsTotal.WithLabelValues("proceed").Inc()
			return next(c)
		}
	}
}
