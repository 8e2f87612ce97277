package ports

import (
	"context"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// HandoverRepository defines persistence operations for handover documents.
type HandoverRepository interface {
	FindByID(ctx context.Context, id string) (*domain.HandoverDocument, error)
	// Upsert writes the whole document, overwriting any existing payload and
	// refreshing last_updated. There is no concurrency check.
	Upsert(ctx context.Context, doc *domain.HandoverDocument) error
	// ListSummaries returns {id, last_updated} pairs ordered by last_updated
	// descending.
	ListSummaries(ctx context.Context) ([]domain.HandoverSummary, error)
}
