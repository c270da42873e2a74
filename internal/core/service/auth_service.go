package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
	"github.com/govtrack/disbursement-system/internal/core/session"
)

// RevocationList is the cross-instance revocation store (Redis).
type RevocationList interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// AuthService implements sign-in, sign-out, and session liveness. It is
// the only component that mutates the session registry.
type AuthService struct {
	users       ports.UserRepository
	registry    *session.Registry
	revocations RevocationList
	audit       ports.AuditRecorder
	jwtSecret   string
	tokenTTL    time.Duration
	log         zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	registry *session.Registry,
	revocations RevocationList,
	audit ports.AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AuthService{
		users:       users,
		registry:    registry,
		revocations: revocations,
		audit:       audit,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

// SignIn verifies credentials against the user store and, on success,
// registers the session before returning, so any authorization check
// that runs afterwards sees the signed-in state. On failure no session
// state changes (fail closed).
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.SignInResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Indistinguishable from a wrong password on the outside.
			return nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("user lookup failed")
		return nil, domain.ErrServiceUnavailable
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	now := time.Now().UTC()
	sessionID := uuid.NewString()
	expires := now.Add(s.tokenTTL)

	token, err := s.generateToken(user, sessionID, now, expires)
	if err != nil {
		s.log.Error().Err(err).Msg("token generation failed")
		return nil, domain.ErrServiceUnavailable
	}

	s.registry.Register(session.Session{
		ID:       sessionID,
		User:     user,
		IssuedAt: now,
		Expires:  expires,
	})

	// Last-login bookkeeping is best effort.
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    user.ID,
		ActorEmail: user.Email,
		Action:     domain.AuditLogin,
		EntityType: "User",
		EntityID:   user.ID,
		Timestamp:  now,
	})

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("sign-in")

	return &ports.SignInResult{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expires,
		User:      user,
	}, nil
}

// SignOut clears the local session unconditionally. The remote
// revocation list is updated best effort: a failure there is logged
// and never blocks leaving the authenticated state.
func (s *AuthService) SignOut(ctx context.Context, sessionID string, actor *domain.User) {
	s.registry.Revoke(sessionID)

	if err := s.revocations.Revoke(ctx, sessionID, s.tokenTTL); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("remote session revocation failed")
	}

	if actor != nil {
		s.audit.Record(domain.AuditEntry{
			ActorID:    actor.ID,
			ActorEmail: actor.Email,
			Action:     domain.AuditLogout,
			EntityType: "User",
			EntityID:   actor.ID,
			Timestamp:  time.Now().UTC(),
		})
	}
}

// SessionActive reports whether the session is registered locally and
// absent from the remote revocation list. When the revocation store is
// unreachable the local registry stays authoritative.
func (s *AuthService) SessionActive(ctx context.Context, sessionID string) bool {
	if _, ok := s.registry.Get(sessionID); !ok {
		return false
	}
	revoked, err := s.revocations.IsRevoked(ctx, sessionID)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("revocation check failed, trusting local registry")
		return true
	}
	return !revoked
}

func (s *AuthService) generateToken(user *domain.User, sessionID string, issued, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"jti":        sessionID,
		"email":      user.Email,
		"username":   user.Username,
		"role":       string(user.Role),
		"department": user.Department,
		"iat":        issued.Unix(),
		"exp":        expires.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
