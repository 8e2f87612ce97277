package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// SessionRepository is the PostgreSQL-backed session store.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Insert(ctx context.Context, session *domain.Session) error {
	query := `INSERT INTO sessions (token, username, role, display_name, login_time)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		session.Token, session.Username, session.Role, session.DisplayName, session.LoginTime)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `SELECT token, username, role, display_name, login_time
	          FROM sessions WHERE token = $1`

	session := &domain.Session{}
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&session.Token, &session.Username, &session.Role, &session.DisplayName, &session.LoginTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

// DeleteByToken removes the session. A token with no matching row is a no-op.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
