package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/govtrack/disbursement-system/internal/api/middleware"
	"github.com/govtrack/disbursement-system/internal/core/access"
	"github.com/govtrack/disbursement-system/internal/core/domain"
)

func navLabels(t *testing.T, body []byte) []string {
	t.Helper()
	var resp struct {
		Items []struct {
			Label    string `json:"label"`
			Children []struct {
				Label string `json:"label"`
			} `json:"children"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	labels := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestNavigationHandler_AdminMenu(t *testing.T) {
	e := newTestEcho()
	handler := NewNavigationHandler(access.DefaultNavigation())

	req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u1", Role: domain.RoleAdmin, IsActive: true})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	labels := navLabels(t, rec.Body.Bytes())
	found := false
	for _, l := range labels {
		if l == "Administration" {
			found = true
		}
	}
	if !found {
		t.Fatalf("admin menu missing Administration: %v", labels)
	}
}

func TestNavigationHandler_ViewerMenuOmitsAdmin(t *testing.T) {
	e := newTestEcho()
	handler := NewNavigationHandler(access.DefaultNavigation())

	req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUser, &domain.User{ID: "u2", Role: domain.RoleViewer, IsActive: true})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	for _, l := range navLabels(t, rec.Body.Bytes()) {
		if l == "Administration" {
			t.Fatalf("viewer menu contains Administration")
		}
	}
}

func TestNavigationHandler_NoUser(t *testing.T) {
	e := newTestEcho()
	handler := NewNavigationHandler(access.DefaultNavigation())

	req := httptest.NewRequest(http.MethodGet, "/v1/navigation", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
