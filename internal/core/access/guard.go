package access

import "github.com/govtrack/disbursement-system/internal/core/domain"

// Redirect destinations for denied navigation attempts. An
// unauthenticated attempt and an authenticated-but-unauthorized
// attempt are different user-facing outcomes and must never share a
// destination.
const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
)

// Requirement is a route's declared access requirement. Roles and
// Capabilities may both be set; both must then be satisfied.
type Requirement struct {
	Roles        []domain.Role
	Capabilities []Capability
}

// Outcome is the guard's verdict for one navigation attempt.
type Outcome int

const (
	Proceed Outcome = iota
	RedirectLogin
	RedirectUnauthorized
)

// Decision carries the verdict and, for denials, where to send the user.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool { return d.Outcome == Proceed }

// Authorize decides a single navigation attempt. It is evaluated fresh
// for every attempt; a prior verdict is never reused across routes.
//
//  1. No user (or an inactive one, which counts as unauthenticated):
//     redirect to the login route.
//  2. Declared roles the user does not hold: redirect to unauthorized.
//  3. Declared capabilities the user does not satisfy (unknown names
//     evaluate to false, never panic): redirect to unauthorized.
//  4. Otherwise proceed.
func Authorize(user *domain.User, req Requirement) Decision {
	if user == nil || !user.IsActive {
		return Decision{Outcome: RedirectLogin, Location: LoginPath}
	}

	if len(req.Roles) > 0 && !HasAnyRole(user, req.Roles...) {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}

	if len(req.Capabilities) > 0 && !CanAll(user, req.Capabilities...) {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}

	return Decision{Outcome: Proceed}
}
