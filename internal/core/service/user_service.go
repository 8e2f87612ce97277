package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

// UserService implements the admin-only user management operations.
type UserService struct {
	users  ports.UserRepository
	cache  ports.SessionCache
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, cache ports.SessionCache, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cache: cache, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("user list failed")
		return nil, err
	}
	return users, nil
}

// Create hashes the password and inserts the account. Role defaults to
// domain.RoleUser. An existing username is refused without touching the
// existing record.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Name == "" {
		return nil, domain.ErrMissingFields
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         role,
		DisplayName:  input.Name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if err != domain.ErrDuplicateUsername {
			s.logger.Error().Err(err).Str("username", input.Username).Msg("user insert failed")
		}
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user created")
	return user, nil
}

// Delete removes the user and all their sessions. The session and user rows
// are removed in one transaction by the repository; the returned tokens are
// then purged from the session cache so revocation is immediate. A failed
// purge fails the call: a surviving cache entry would keep validating a
// deleted user's token until its TTL.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if username == domain.ProtectedUsername {
		return domain.ErrProtectedUser
	}

	tokens, err := s.users.Delete(ctx, username)
	if err != nil {
		if err != domain.ErrUserNotFound {
			s.logger.Error().Err(err).Str("username", username).Msg("user delete failed")
		}
		return err
	}

	if len(tokens) > 0 {
		if err := s.cache.Delete(ctx, tokens...); err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("session cache purge failed")
			return err
		}
	}

	s.logger.Info().Str("username", username).Int("sessions_removed", len(tokens)).Msg("user deleted")
	return nil
}
