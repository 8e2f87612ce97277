package ports

import (
	"context"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// SessionRepository defines persistence operations for session records.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	// FindByToken resolves a token to its session record, returning
	// domain.ErrInvalidSession when no record matches.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	// DeleteByToken removes the session if present. Deleting a token that
	// does not exist is not an error.
	DeleteByToken(ctx context.Context, token string) error
}

// SessionCache is a cache in front of the session store. Entries are written
// at login only and removed on logout and user deletion; validation never
// writes, so a revoked token cannot be re-inserted by a concurrent read. The
// relational store stays authoritative: a cache miss is never an
// authentication failure.
type SessionCache interface {
	// Get returns the cached session, or nil on a miss.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Set(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, tokens ...string) error
}
