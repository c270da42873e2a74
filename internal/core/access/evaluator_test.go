package access

import (
	"testing"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

func user(role domain.Role, active bool) *domain.User {
	return &domain.User{ID: "u1", Role: role, IsActive: active}
}

func TestCan_RoleMatrix(t *testing.T) {
	cases := []struct {
		name string
		user *domain.User
		cap  Capability
		want bool
	}{
		{"admin can edit", user(domain.RoleAdmin, true), CanEdit, true},
		{"encoder can edit", user(domain.RoleEncoder, true), CanEdit, true},
		{"viewer cannot edit", user(domain.RoleViewer, true), CanEdit, false},
		{"admin can view", user(domain.RoleAdmin, true), CanView, true},
		{"encoder can view", user(domain.RoleEncoder, true), CanView, true},
		{"viewer can view", user(domain.RoleViewer, true), CanView, true},
		{"admin manages users", user(domain.RoleAdmin, true), CanManageUsers, true},
		{"encoder cannot manage users", user(domain.RoleEncoder, true), CanManageUsers, false},
		{"viewer cannot manage users", user(domain.RoleViewer, true), CanManageUsers, false},
		{"isAdmin true for admin", user(domain.RoleAdmin, true), IsAdmin, true},
		{"isAdmin false for encoder", user(domain.RoleEncoder, true), IsAdmin, false},
		{"isEncoder true for encoder", user(domain.RoleEncoder, true), IsEncoder, true},
		{"isViewer true for viewer", user(domain.RoleViewer, true), IsViewer, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Can(tc.user, tc.cap); got != tc.want {
				t.Fatalf("Can(%s, %s) = %v, want %v", tc.user.Role, tc.cap, got, tc.want)
			}
		})
	}
}

func TestCan_NilUserDeniesEverything(t *testing.T) {
	for _, cap := range []Capability{CanEdit, CanView, CanManageUsers, IsAdmin, IsEncoder, IsViewer} {
		if Can(nil, cap) {
			t.Fatalf("Can(nil, %s) = true, want false", cap)
		}
	}
}

func TestCan_InactiveUserDeniesEverything(t *testing.T) {
	inactive := user(domain.RoleAdmin, false)
	for _, cap := range []Capability{CanEdit, CanView, CanManageUsers, IsAdmin} {
		if Can(inactive, cap) {
			t.Fatalf("inactive admin granted %s", cap)
		}
	}
}

func TestParseCapability_UnknownDenies(t *testing.T) {
	got := ParseCapability("canDoAnything")
	if got != capabilityUnknown {
		t.Fatalf("unknown capability parsed to %q", got)
	}
	if Can(user(domain.RoleAdmin, true), got) {
		t.Fatalf("unknown capability evaluated to true")
	}
}

func TestParseCapability_KnownNames(t *testing.T) {
	for _, name := range []string{"canEdit", "canView", "canManageUsers", "isAdmin", "isEncoder", "isViewer"} {
		if got := ParseCapability(name); string(got) != name {
			t.Fatalf("ParseCapability(%q) = %q", name, got)
		}
	}
}

func TestHasRole_ExactMatchOnly(t *testing.T) {
	encoder := user(domain.RoleEncoder, true)
	if !HasRole(encoder, domain.RoleEncoder) {
		t.Fatalf("encoder should hold ENCODER")
	}
	if HasRole(encoder, domain.RoleAdmin) {
		t.Fatalf("encoder should not hold ADMIN")
	}
	if HasRole(nil, domain.RoleViewer) {
		t.Fatalf("nil user should hold no role")
	}
}

func TestHasAnyRole(t *testing.T) {
	viewer := user(domain.RoleViewer, true)
	if !HasAnyRole(viewer, domain.RoleAdmin, domain.RoleViewer) {
		t.Fatalf("viewer should match one of [ADMIN VIEWER]")
	}
	if HasAnyRole(viewer, domain.RoleAdmin, domain.RoleEncoder) {
		t.Fatalf("viewer should not match [ADMIN ENCODER]")
	}
	if HasAnyRole(viewer) {
		t.Fatalf("empty role list should never match")
	}
}

func TestCanAll(t *testing.T) {
	admin := user(domain.RoleAdmin, true)
	if !CanAll(admin, CanEdit, CanView, CanManageUsers) {
		t.Fatalf("admin should satisfy all capabilities")
	}
	encoder := user(domain.RoleEncoder, true)
	if CanAll(encoder, CanEdit, CanManageUsers) {
		t.Fatalf("encoder should fail canManageUsers")
	}
	if !CanAll(encoder) {
		t.Fatalf("empty capability list is vacuously satisfied")
	}
}
