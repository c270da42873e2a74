package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/api/middleware"
	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth
// middleware and performs a fast-fail check before any service call:
// a missing or nil user means the middleware did not run on this route.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}

// ctxSessionID extracts the session ID (token jti) set by the Auth
// middleware.
func ctxSessionID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextKeySessionID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing session identity")
	}
	return id, nil
}
