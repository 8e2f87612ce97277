package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// HandoverRepository is the PostgreSQL-backed handover document store. The
// payload column is raw text so stored documents round-trip byte-exact.
type HandoverRepository struct {
	db *sql.DB
}

func NewHandoverRepository(db *sql.DB) *HandoverRepository {
	return &HandoverRepository{db: db}
}

func (r *HandoverRepository) FindByID(ctx context.Context, id string) (*domain.HandoverDocument, error) {
	query := `SELECT id, payload, last_updated FROM handovers WHERE id = $1`

	doc := &domain.HandoverDocument{}
	var payload string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc.ID, &payload, &doc.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find handover: %w", err)
	}
	doc.Payload = json.RawMessage(payload)
	return doc, nil
}

// Upsert writes the whole document, unconditionally overwriting any existing
// payload and refreshing last_updated (last writer wins).
func (r *HandoverRepository) Upsert(ctx context.Context, doc *domain.HandoverDocument) error {
	query := `INSERT INTO handovers (id, payload, last_updated)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (id) DO UPDATE
	          SET payload = EXCLUDED.payload, last_updated = EXCLUDED.last_updated`

	_, err := r.db.ExecContext(ctx, query, doc.ID, string(doc.Payload), doc.LastUpdated)
	if err != nil {
		return fmt.Errorf("upsert handover: %w", err)
	}
	return nil
}

func (r *HandoverRepository) ListSummaries(ctx context.Context) ([]domain.HandoverSummary, error) {
	query := `SELECT id, last_updated FROM handovers ORDER BY last_updated DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list handovers: %w", err)
	}
	defer rows.Close()

	var summaries []domain.HandoverSummary
	for rows.Next() {
		var s domain.HandoverSummary
		if err := rows.Scan(&s.ID, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan handover: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list handovers: %w", err)
	}
	return summaries, nil
}
