package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

// HandoverService implements whole-document storage of opaque JSON handover
// payloads. The payload is never interpreted here beyond the opaque bytes.
type HandoverService struct {
	repo   ports.HandoverRepository
	logger zerolog.Logger
}

func NewHandoverService(repo ports.HandoverRepository, logger zerolog.Logger) *HandoverService {
	return &HandoverService{repo: repo, logger: logger}
}

func (s *HandoverService) Get(ctx context.Context, id string) (*domain.HandoverDocument, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err != domain.ErrDocumentNotFound {
			s.logger.Error().Err(err).Str("id", id).Msg("handover lookup failed")
		}
		return nil, err
	}
	return doc, nil
}

// Put overwrites the whole document under id and refreshes last_updated.
// There is no optimistic-concurrency check: the last writer wins.
func (s *HandoverService) Put(ctx context.Context, id string, payload json.RawMessage) (*domain.HandoverDocument, error) {
	doc := &domain.HandoverDocument{
		ID:          id,
		Payload:     payload,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("handover upsert failed")
		return nil, err
	}
	s.logger.Info().Str("id", id).Int("bytes", len(payload)).Msg("handover stored")
	return doc, nil
}

func (s *HandoverService) List(ctx context.Context) ([]domain.HandoverSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("handover list failed")
		return nil, err
	}
	return summaries, nil
}
