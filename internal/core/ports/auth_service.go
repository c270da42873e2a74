package ports

import (
	"context"
	"time"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// SignInResult is returned on successful authentication.
type SignInResult struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService implements the sign-in / sign-out flow. It is the only
// writer of session state.
type AuthService interface {
	// SignIn verifies credentials and materializes the user profile.
	// Failures are returned as values: domain.ErrInvalidCredentials,
	// domain.ErrInactiveAccount, or domain.ErrServiceUnavailable.
	// Session state is untouched on failure (fail closed).
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// SignOut revokes the session. The local revocation is
	// unconditional; a failure to reach the remote revocation list is
	// logged and never surfaced.
	SignOut(ctx context.Context, sessionID string, actor *domain.User)

	// SessionActive reports whether the session is still live, i.e.
	// registered locally and not on the remote revocation list.
	SessionActive(ctx context.Context, sessionID string) bool
}
