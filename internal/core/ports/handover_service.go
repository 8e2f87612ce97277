package ports

import (
	"context"
	"encoding/json"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

// HandoverService defines use-case operations for handover documents.
type HandoverService interface {
	Get(ctx context.Context, id string) (*domain.HandoverDocument, error)
	// Put stores payload under id, replacing any existing document whole.
	Put(ctx context.Context, id string, payload json.RawMessage) (*domain.HandoverDocument, error)
	List(ctx context.Context) ([]domain.HandoverSummary, error)
}
