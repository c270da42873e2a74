package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
	"github.com/govtrack/disbursement-system/internal/core/session"
)

// UserService implements admin account management.
type UserService struct {
	users       ports.UserRepository
	sessions    *session.Registry
	revocations RevocationList
	audit       ports.AuditRecorder
	log         zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	sessions *session.Registry,
	revocations RevocationList,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		sessions:    sessions,
		revocations: revocations,
		audit:       audit,
		log:         log,
	}
}

func (s *UserService) Create(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email, username, and password are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         input.Role,
		Department:   input.Department,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recordAudit(actor, domain.AuditUserCreated, created.ID, created.Email)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Role != "" {
		if !domain.ValidRole(input.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
		}
		user.Role = input.Role
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recordAudit(actor, domain.AuditUserUpdated, user.ID, user.Email)
	return user, nil
}

// Deactivate flips the account inactive and force-signs-out every live
// session of the user, so the deactivation takes effect on the next
// request rather than at token expiry.
func (s *UserService) Deactivate(ctx context.Context, actor *domain.User, id string) error {
	return s.setActive(ctx, actor, id, false)
}

func (s *UserService) Reactivate(ctx context.Context, actor *domain.User, id string) error {
	return s.setActive(ctx, actor, id, true)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) setActive(ctx context.Context, actor *domain.User, id string, active bool) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if !active {
		s.revokeSessions(ctx, user.ID)
	}

	action := domain.AuditUserDeactivated
	if active {
		action = domain.AuditUserReactivated
	}
	s.recordAudit(actor, action, user.ID, user.Email)
	return nil
}

// revokeSessions drops every live session of the user locally and marks
// it on the cross-instance revocation list. Local revocation is
// unconditional; a remote failure is logged and non-fatal, same as
// sign-out.
func (s *UserService) revokeSessions(ctx context.Context, userID string) {
	for _, sess := range s.sessions.RevokeUser(userID) {
		ttl := time.Until(sess.Expires)
		if ttl <= 0 {
			continue
		}
		if err := s.revocations.Revoke(ctx, sess.ID, ttl); err != nil {
			s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("remote session revocation failed")
		}
	}
}

func (s *UserService) recordAudit(actor *domain.User, action, entityID, detail string) {
	if actor == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     action,
		EntityType: "User",
		EntityID:   entityID,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	})
}
