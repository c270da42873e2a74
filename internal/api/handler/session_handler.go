package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
	"github.com/govtrack/disbursement-system/internal/core/session"
)

// SessionHandler exposes admin session management: listing who is
// signed in and forcibly revoking a session.
type SessionHandler struct {
	registry    *session.Registry
	authService ports.AuthService
	audit       ports.AuditRecorder
}

func NewSessionHandler(registry *session.Registry, authService ports.AuthService, audit ports.AuditRecorder) *SessionHandler {
	return &SessionHandler{registry: registry, authService: authService, audit: audit}
}

type sessionResponse struct {
	ID       string       `json:"id"`
	User     *domain.User `json:"user"`
	IssuedAt time.Time    `json:"issued_at"`
	Expires  time.Time    `json:"expires"`
}

type listSessionsResponse struct {
	Data []sessionResponse `json:"data"`
}

// List handles GET /v1/sessions, returning active sessions ordered by
// issue time.
//
// @Summary      List active sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listSessionsResponse
// @Router       /v1/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	active := h.registry.Active()
	data := make([]sessionResponse, 0, len(active))
	for _, s := range active {
		data = append(data, sessionResponse{
			ID:       s.ID,
			User:     s.User,
			IssuedAt: s.IssuedAt,
			Expires:  s.Expires,
		})
	}
	return c.JSON(http.StatusOK, listSessionsResponse{Data: data})
}

// Revoke handles DELETE /v1/sessions/:id, forcibly signing out another
// user's session.
//
// @Summary      Revoke a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id  path  string  true  "Session ID"
// @Success      204  "revoked"
// @Failure      404  {object}  errorResponse
// @Router       /v1/sessions/{id} [delete]
func (h *SessionHandler) Revoke(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	target, ok := h.registry.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	// Passing a nil actor keeps SignOut from writing its LOGOUT entry;
	// an admin revocation is recorded under its own action instead.
	h.authService.SignOut(c.Request().Context(), id, nil)

	h.audit.Record(domain.AuditEntry{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     domain.AuditSessionRevoked,
		EntityType: "Session",
		EntityID:   id,
		Detail:     "revoked session of user " + target.User.ID,
		Timestamp:  time.Now().UTC(),
	})

	return c.NoContent(http.StatusNoContent)
}
