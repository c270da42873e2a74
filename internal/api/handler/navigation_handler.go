package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/core/access"
	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// NavigationHandler serves the role-filtered menu tree.
type NavigationHandler struct {
	entries []access.NavEntry
}

// NewNavigationHandler builds the handler around a fixed menu tree;
// pass access.DefaultNavigation() in production.
func NewNavigationHandler(entries []access.NavEntry) *NavigationHandler {
	return &NavigationHandler{entries: entries}
}

type navigationResponse struct {
	Items []access.NavEntry `json:"items"`
}

type meResponse struct {
	User         *domain.User    `json:"user"`
	Capabilities map[string]bool `json:"capabilities"`
}

func newMeResponse(user *domain.User) meResponse {
	return meResponse{
		User: user,
		Capabilities: map[string]bool{
			string(access.CanEdit):        access.Can(user, access.CanEdit),
			string(access.CanView):        access.Can(user, access.CanView),
			string(access.CanManageUsers): access.Can(user, access.CanManageUsers),
			string(access.IsAdmin):        access.Can(user, access.IsAdmin),
			string(access.IsEncoder):      access.Can(user, access.IsEncoder),
			string(access.IsViewer):       access.Can(user, access.IsViewer),
		},
	}
}

// Get returns the menu entries visible to the authenticated user.
// Filtering here is display-only; route middleware stays the
// enforcement point.
//
// @Summary      Navigation menu for the current user
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navigationResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/navigation [get]
func (h *NavigationHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, navigationResponse{
		Items: access.VisibleItems(user, h.entries),
	})
}
