package ports

import (
	"context"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// AuthService implements the session lifecycle: credential verification,
// token minting, validation and logout.
type AuthService interface {
	// Login verifies the credentials and mints a new session. Unknown
	// usernames and wrong passwords both fail with the identical
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout deletes the session. Logging out an unknown token succeeds.
	Logout(ctx context.Context, token string) error
	// Validate resolves a token to its session record without mutating it.
	Validate(ctx context.Context, token string) (*domain.Session, error)
}
