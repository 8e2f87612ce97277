package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// UserRepository is the PostgreSQL-backed user store.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT username, password_hash, role, display_name, created_at
	          FROM users WHERE username = $1`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.PasswordHash, &user.Role, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (username, password_hash, role, display_name, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.DisplayName, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// List returns all users ordered by username. Password hashes are not
// selected.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT username, role, display_name, created_at
	          FROM users ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.Username, &user.Role, &user.DisplayName, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes the user's sessions and the user row in one transaction.
// The whole transaction rolls back when the user does not exist, so sessions
// are never removed for a failed delete. Returns the tokens of the removed
// sessions.
func (r *UserRepository) Delete(ctx context.Context, username string) ([]string, error) {
	var tokens []string

	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		rows, err := tx.QueryContext(ctx,
			`DELETE FROM sessions WHERE username = $1 RETURNING token`, username)
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var token string
			if err := rows.Scan(&token); err != nil {
				return fmt.Errorf("scan token: %w", err)
			}
			tokens = append(tokens, token)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if affected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
