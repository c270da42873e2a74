package ports

import (
	"context"

	"github.com/govtrack/disbursement-system/internal/core/domain"
)

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Email      string
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Role       domain.Role
	Department string
}

// UpdateUserInput carries the editable profile fields. Zero values
// leave the corresponding field unchanged; role changes take effect on
// the user's next authorization check (capabilities are never cached).
type UpdateUserInput struct {
	FirstName  string
	LastName   string
	Role       domain.Role
	Department string
}

// UserService defines admin-only account management operations.
type UserService interface {
	Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id string, input UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, actor *domain.User, id string) error
	Reactivate(ctx context.Context, actor *domain.User, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
