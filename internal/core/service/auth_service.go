package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

// sessionTokenBytes is the entropy of a minted session token (256 bits).
const sessionTokenBytes = 32

// AuthService implements login, logout and session validation.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	cache    ports.SessionCache
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository, cache ports.SessionCache, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, cache: cache, logger: logger}
}

// Login verifies the username/password pair and mints a new session carrying
// a snapshot of the user's role and display name. Unknown usernames and wrong
// passwords are deliberately indistinguishable: both return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", username).Msg("user lookup failed")
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		s.logger.Error().Err(err).Msg("session token generation failed")
		return "", nil, err
	}

	session := &domain.Session{
		Token:       token,
		Username:    user.Username,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		LoginTime:   time.Now().UTC(),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("session insert failed")
		return "", nil, err
	}

	if err := s.cache.Set(ctx, session); err != nil {
		s.logger.Warn().Err(err).Msg("session cache set failed")
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")
	return token, user, nil
}

// Logout deletes the session both from the store and the cache. Logging out a
// token that no longer exists is not an error, but a surviving cache entry
// would keep validating the revoked token until its TTL, so a failed cache
// delete fails the logout and the client retries.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("session delete failed")
		return err
	}
	if err := s.cache.Delete(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("session cache delete failed")
		return err
	}
	return nil
}

// Validate resolves a token to its session record. It is read-only: the
// session's login time is never touched (no sliding expiration). The cache is
// consulted first; a miss falls through to the authoritative store. Only
// Login writes cache entries — a re-insert here could race a concurrent
// logout's cache delete and resurrect the revoked token.
func (s *AuthService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	if cached, err := s.cache.Get(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("session cache get failed")
	} else if cached != nil {
		return cached, nil
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if err == domain.ErrInvalidSession {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("session lookup failed")
		return nil, err
	}
	return session, nil
}

// generateSessionToken returns a cryptographically random token, base64url
// encoded without padding. 32 bytes makes collisions and guessing infeasible.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
