package access

import (
	"testing"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

func labels(entries []NavEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func find(entries []NavEntry, label string) (NavEntry, bool) {
	for _, e := range entries {
		if e.Label == label {
			return e, true
		}
	}
	return NavEntry{}, false
}

func TestVisibleItems_AdminSeesEverything(t *testing.T) {
	admin := user(domain.RoleAdmin, true)
	visible := VisibleItems(admin, DefaultNavigation())

	want := []string{"Dashboard", "Disbursements", "Reports", "Archive", "Administration"}
	got := labels(visible)
	if len(got) != len(want) {
		t.Fatalf("admin menu = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("admin menu order: got %v, want %v", got, want)
		}
	}

	adminSection, ok := find(visible, "Administration")
	if !ok || len(adminSection.Children) != 3 {
		t.Fatalf("admin should see all three administration children")
	}
}

func TestVisibleItems_EncoderSeesNewEntryButNoAdmin(t *testing.T) {
	encoder := user(domain.RoleEncoder, true)
	visible := VisibleItems(encoder, DefaultNavigation())

	if _, ok := find(visible, "Administration"); ok {
		t.Fatalf("encoder must not see Administration")
	}

	disb, ok := find(visible, "Disbursements")
	if !ok {
		t.Fatalf("encoder must see Disbursements")
	}
	if _, ok := find(disb.Children, "New Entry"); !ok {
		t.Fatalf("encoder must see New Entry")
	}
}

func TestVisibleItems_ViewerLosesEditEntries(t *testing.T) {
	viewer := user(domain.RoleViewer, true)
	visible := VisibleItems(viewer, DefaultNavigation())

	disb, ok := find(visible, "Disbursements")
	if !ok {
		t.Fatalf("viewer must see Disbursements")
	}
	if _, ok := find(disb.Children, "New Entry"); ok {
		t.Fatalf("viewer must not see New Entry")
	}
	if _, ok := find(disb.Children, "View All"); !ok {
		t.Fatalf("viewer must keep View All")
	}
	if _, ok := find(visible, "Administration"); ok {
		t.Fatalf("viewer must not see Administration")
	}
}

func TestVisibleItems_ParentKeptForVisibleChild(t *testing.T) {
	// A parent not directly allowed stays visible when any child is.
	entries := []NavEntry{
		{
			Label: "Tools", Route: "/tools",
			AllowedRoles: []domain.Role{domain.RoleAdmin},
			Children: []NavEntry{
				{Label: "Export", Route: "/tools/export", AllowedRoles: []domain.Role{domain.RoleEncoder}},
			},
		},
	}

	encoder := user(domain.RoleEncoder, true)
	visible := VisibleItems(encoder, entries)
	if len(visible) != 1 || visible[0].Label != "Tools" {
		t.Fatalf("parent with visible child should stay, got %v", labels(visible))
	}
	if len(visible[0].Children) != 1 || visible[0].Children[0].Label != "Export" {
		t.Fatalf("child filtering broken: %v", labels(visible[0].Children))
	}
}

func TestVisibleItems_ParentDroppedWhenNothingVisible(t *testing.T) {
	entries := []NavEntry{
		{
			Label: "Hidden", Route: "/hidden",
			AllowedRoles: []domain.Role{domain.RoleAdmin},
			Children: []NavEntry{
				{Label: "Secret", Route: "/hidden/secret", AllowedRoles: []domain.Role{domain.RoleAdmin}},
			},
		},
	}
	if got := VisibleItems(user(domain.RoleViewer, true), entries); len(got) != 0 {
		t.Fatalf("expected empty menu, got %v", labels(got))
	}
}

func TestVisibleItems_NilUserSeesNothing(t *testing.T) {
	if got := VisibleItems(nil, DefaultNavigation()); len(got) != 0 {
		t.Fatalf("nil user menu should be empty, got %v", labels(got))
	}
}

func TestVisibleItems_Idempotent(t *testing.T) {
	encoder := user(domain.RoleEncoder, true)
	once := VisibleItems(encoder, DefaultNavigation())
	twice := VisibleItems(encoder, once)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %v vs %v", labels(once), labels(twice))
	}
	for i := range once {
		if once[i].Label != twice[i].Label {
			t.Fatalf("filter reordered entries: %v vs %v", labels(once), labels(twice))
		}
	}
}

func TestVisibleItems_DoesNotMutateInput(t *testing.T) {
	entries := DefaultNavigation()
	before := len(entries[1].Children)
	_ = VisibleItems(user(domain.RoleViewer, true), entries)
	if len(entries[1].Children) != before {
		t.Fatalf("input tree was mutated")
	}
}
