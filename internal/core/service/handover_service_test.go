package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaydesk/handover-api/internal/core/domain"
)

type stubHandoverRepo struct {
	docs map[string]*domain.HandoverDocument
}

func newStubHandoverRepo() *stubHandoverRepo {
	return &stubHandoverRepo{docs: make(map[string]*domain.HandoverDocument)}
}

func (r *stubHandoverRepo) FindByID(_ context.Context, id string) (*domain.HandoverDocument, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *doc
	clone.Payload = append(json.RawMessage(nil), doc.Payload...)
	return &clone, nil
}

func (r *stubHandoverRepo) Upsert(_ context.Context, doc *domain.HandoverDocument) error {
	clone := *doc
	clone.Payload = append(json.RawMessage(nil), doc.Payload...)
	r.docs[doc.ID] = &clone
	return nil
}

func (r *stubHandoverRepo) ListSummaries(_ context.Context) ([]domain.HandoverSummary, error) {
	summaries := make([]domain.HandoverSummary, 0, len(r.docs))
	for _, doc := range r.docs {
		summaries = append(summaries, domain.HandoverSummary{ID: doc.ID, LastUpdated: doc.LastUpdated})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastUpdated.After(summaries[j].LastUpdated)
	})
	return summaries, nil
}

func TestHandoverService_PutThenGet_RoundTrip(t *testing.T) {
	svc := NewHandoverService(newStubHandoverRepo(), zerolog.Nop())

	payload := json.RawMessage(`{"shift":"night","notes":["pump 3 flaky"]}`)
	if _, err := svc.Put(context.Background(), "ward-7", payload); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	doc, err := svc.Get(context.Background(), "ward-7")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(doc.Payload, payload) {
		t.Fatalf("payload mismatch: got %s", doc.Payload)
	}
}

func TestHandoverService_LastWriteWins(t *testing.T) {
	svc := NewHandoverService(newStubHandoverRepo(), zerolog.Nop())

	payloadA := json.RawMessage(`{"rev":"A"}`)
	payloadB := json.RawMessage(`{"rev":"B","extra":true}`)

	if _, err := svc.Put(context.Background(), "doc", payloadA); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if _, err := svc.Put(context.Background(), "doc", payloadB); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	doc, err := svc.Get(context.Background(), "doc")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(doc.Payload, payloadB) {
		t.Fatalf("expected last write to win, got %s", doc.Payload)
	}
}

func TestHandoverService_Get_NotFound(t *testing.T) {
	svc := NewHandoverService(newStubHandoverRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestHandoverService_List_OrderedByLastUpdatedDesc(t *testing.T) {
	repo := newStubHandoverRepo()
	svc := NewHandoverService(repo, zerolog.Nop())

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range []string{"oldest", "middle", "newest"} {
		doc := &domain.HandoverDocument{
			ID:          id,
			Payload:     json.RawMessage(`{}`),
			LastUpdated: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Upsert(context.Background(), doc); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	summaries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []string{"newest", "middle", "oldest"}
	if len(summaries) != len(want) {
		t.Fatalf("expected %d summaries, got %d", len(want), len(summaries))
	}
	for i, id := range want {
		if summaries[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, summaries[i].ID)
		}
	}
}
