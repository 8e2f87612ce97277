package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrDocumentNotFound = errors.New("handover document not found")

// HandoverDocument is an opaque JSON blob stored by id. The payload is never
// interpreted by the core; it must round-trip byte-exact. Writes replace the
// whole document unconditionally (last writer wins).
type HandoverDocument struct {
	ID          string          `json:"id"`
	Payload     json.RawMessage `json:"payload"`
	LastUpdated time.Time       `json:"last_updated"`
}

// HandoverSummary is the lightweight view used in list responses.
type HandoverSummary struct {
	ID          string    `json:"id"`
	LastUpdated time.Time `json:"last_updated"`
}
