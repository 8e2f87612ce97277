package ports

import (
	"context"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// CreateUserInput carries the data for creating a user account.
// Role defaults to domain.RoleUser when empty.
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// UserService defines the admin-only user management operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// Delete removes the user and all their sessions. The reserved admin
	// account is refused with domain.ErrProtectedUser.
	Delete(ctx context.Context, username string) error
}
