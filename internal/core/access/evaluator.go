// Package access implements role and capability evaluation for the
// disbursement system: pure predicates over a user, the route
// authorization guard, and the navigation visibility filter.
//
// Every predicate is nil-safe and recomputed from the user value on
// each call; nothing here caches, performs I/O, or mutates state.
package access

import "github.com/govtrack/disbursement-system/internal/core/domain"

// Capability names a derived boolean permission. The set is closed:
// route tables reference these constants, and anything else parses to
// capabilityUnknown which always evaluates to false.
type Capability string

const (
	CanEdit        Capability = "canEdit"
	CanView        Capability = "canView"
	CanManageUsers Capability = "canManageUsers"
	IsAdmin        Capability = "isAdmin"
	IsEncoder      Capability = "isEncoder"
	IsViewer       Capability = "isViewer"

	capabilityUnknown Capability = ""
)

// ParseCapability maps a wire-format capability name onto the closed
// enumeration. Unknown names map to a deny-always sentinel so a typo in
// route configuration fails safe instead of crashing navigation.
func ParseCapability(name string) Capability {
	switch Capability(name) {
	case CanEdit, CanView, CanManageUsers, IsAdmin, IsEncoder, IsViewer:
		return Capability(name)
	default:
		return capabilityUnknown
	}
}

// HasRole reports whether user holds exactly the given role.
// A nil or inactive user holds no role.
func HasRole(user *domain.User, role domain.Role) bool {
	return user != nil && user.IsActive && user.Role == role
}

// HasAnyRole reports whether user holds at least one of roles.
func HasAnyRole(user *domain.User, roles ...domain.Role) bool {
	for _, r := range roles {
		if HasRole(user, r) {
			return true
		}
	}
	return false
}

// Can evaluates a single capability for user. Unknown capabilities are
// always false.
func Can(user *domain.User, c Capability) bool {
	switch c {
	case CanEdit:
		return HasAnyRole(user, domain.RoleAdmin, domain.RoleEncoder)
	case CanView:
		return HasAnyRole(user, domain.RoleAdmin, domain.RoleEncoder, domain.RoleViewer)
	case CanManageUsers:
		return HasRole(user, domain.RoleAdmin)
	case IsAdmin:
		return HasRole(user, domain.RoleAdmin)
	case IsEncoder:
		return HasRole(user, domain.RoleEncoder)
	case IsViewer:
		return HasRole(user, domain.RoleViewer)
	default:
		return false
	}
}

// CanAll reports whether user satisfies every capability in caps.
// An empty list is vacuously satisfied.
func CanAll(user *domain.User, caps ...Capability) bool {
	for _, c := range caps {
		if !Can(user, c) {
			return false
		}
	}
	return true
}
