package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/relaydesk/handover-api/internal/api/metrics"
	"github.com/relaydesk/handover-api/internal/core/ports"
)

// maxPayloadBytes caps handover payload size at 1 MiB.
const maxPayloadBytes = 1 << 20

// HandoverHandler handles storage and retrieval of opaque handover documents.
type HandoverHandler struct {
	handoverService ports.HandoverService
}

func NewHandoverHandler(handoverService ports.HandoverService) *HandoverHandler {
	return &HandoverHandler{handoverService: handoverService}
}

type handoverSummaryResponse struct {
	ID          string    `json:"id"`
	LastUpdated time.Time `json:"last_updated"`
}

type listHandoversResponse struct {
	Data []handoverSummaryResponse `json:"data"`
}

type putHandoverResponse struct {
	ID          string    `json:"id"`
	LastUpdated time.Time `json:"last_updated"`
}

// Get returns the stored document payload exactly as it was written.
//
// @Summary      Get a handover document
// @Tags         handovers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  object
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/handovers/{id} [get]
func (h *HandoverHandler) Get(c echo.Context) error {
	doc, err := h.handoverService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.DocumentsReadTotal.Inc()
	return c.JSONBlob(http.StatusOK, doc.Payload)
}

// Put stores the request body as the whole document under id. The previous
// payload, if any, is overwritten unconditionally.
//
// @Summary      Store a handover document
// @Tags         handovers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Document id"
// @Param        body  body      object  true  "Document payload"
// @Success      200   {object}  putHandoverResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/handovers/{id} [put]
func (h *HandoverHandler) Put(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPayloadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}
	if len(payload) > maxPayloadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "payload too large")
	}
	if !json.Valid(payload) {
		return echo.NewHTTPError(http.StatusBadRequest, "payload must be valid JSON")
	}

	doc, err := h.handoverService.Put(c.Request().Context(), c.Param("id"), json.RawMessage(payload))
	if err != nil {
		return err
	}
	metrics.DocumentsWrittenTotal.Inc()

	return c.JSON(http.StatusOK, putHandoverResponse{ID: doc.ID, LastUpdated: doc.LastUpdated})
}

// List returns document summaries ordered by last update, newest first.
//
// @Summary      List handover documents
// @Tags         handovers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listHandoversResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/handovers [get]
func (h *HandoverHandler) List(c echo.Context) error {
	summaries, err := h.handoverService.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]handoverSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, handoverSummaryResponse(s))
	}
	return c.JSON(http.StatusOK, listHandoversResponse{Data: items})
}
