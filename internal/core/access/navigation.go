package access

import "github.com/govtrack/disbursement-system/internal/core/domain"

// NavEntry is one node in the navigation tree shown to the UI.
type NavEntry struct {
	Label        string        `json:"label"`
	Icon         string        `json:"icon,omitempty"`
	Route        string        `json:"route"`
	AllowedRoles []domain.Role `json:"-"`
	Children     []NavEntry    `json:"children,omitempty"`
}

// DefaultNavigation returns the full menu tree before filtering.
// Visibility here is display-only; the guard middleware remains the
// enforcement point for every route.
func DefaultNavigation() []NavEntry {
	all := []domain.Role{domain.RoleAdmin, domain.RoleEncoder, domain.RoleViewer}
	return []NavEntry{
		{Label: "Dashboard", Icon: "dashboard", Route: "/dashboard", AllowedRoles: all},
		{
			Label: "Disbursements", Icon: "payments", Route: "/disbursements", AllowedRoles: all,
			Children: []NavEntry{
				{Label: "View All", Route: "/disbursements", AllowedRoles: all},
				{Label: "New Entry", Route: "/disbursements/new", AllowedRoles: []domain.Role{domain.RoleAdmin, domain.RoleEncoder}},
			},
		},
		{Label: "Reports", Icon: "insights", Route: "/reports", AllowedRoles: all},
		{Label: "Archive", Icon: "inventory", Route: "/archive", AllowedRoles: all},
		{
			Label: "Administration", Icon: "settings", Route: "/admin", AllowedRoles: []domain.Role{domain.RoleAdmin},
			Children: []NavEntry{
				{Label: "User Management", Route: "/admin/users", AllowedRoles: []domain.Role{domain.RoleAdmin}},
				{Label: "System Settings", Route: "/admin/settings", AllowedRoles: []domain.Role{domain.RoleAdmin}},
				{Label: "Audit Logs", Route: "/admin/audit", AllowedRoles: []domain.Role{domain.RoleAdmin}},
			},
		},
	}
}

// VisibleItems filters entries down to what user may see, preserving
// order. Children are filtered first; a parent stays when it is
// directly allowed or has at least one visible child. The filter is
// stable and idempotent, and never reorders.
func VisibleItems(user *domain.User, entries []NavEntry) []NavEntry {
	visible := make([]NavEntry, 0, len(entries))
	for _, e := range entries {
		children := VisibleItems(user, e.Children)
		if !HasAnyRole(user, e.AllowedRoles...) && len(children) == 0 {
			continue
		}
		e.Children = children
		visible = append(visible, e)
	}
	return visible
}
