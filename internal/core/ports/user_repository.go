package ports

import (
	"context"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	// List returns all users without password hashes, ordered by username.
	List(ctx context.Context) ([]*domain.User, error)
	// Delete removes the user and every session belonging to them in a single
	// transaction and returns the tokens of the removed sessions so callers
	// can invalidate caches. Returns domain.ErrUserNotFound when no user row
	// was deleted; in that case no sessions are removed either.
	Delete(ctx context.Context, username string) ([]string, error)
}
