package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/service/behavior"
)

//go:generate moq -out behavior_service_mock_test.go -pkg rest . behaviorService

type behaviorService interface {
	RecordEvents(ctx context.Context, input behavior.RecordEventsInput) (int, error)
	Summary(ctx context.Context, timeframe string) (*domain.BehaviorSummary, error)
}

// BehaviorHandler serves event ingestion and behavior summaries.
type BehaviorHandler struct {
	svc behaviorService
	log *slog.Logger
}

// NewBehaviorHandler creates a BehaviorHandler.
func NewBehaviorHandler(svc behaviorService, logger *slog.Logger) *BehaviorHandler {
	return &BehaviorHandler{svc: svc, log: logger.With("handler", "behavior")}
}

type eventPayload struct {
	PostID      string               `json:"postId"`
	EventType   domain.EventType     `json:"eventType"`
	Timestamp   time.Time            `json:"timestamp"`
	DwellTimeMs *int64               `json:"dwellTimeMs,omitempty"`
	Metadata    domain.EventMetadata `json:"metadata"`
	SessionID   *string              `json:"sessionId,omitempty"`
}

type recordEventsRequest struct {
	Events []eventPayload `json:"events"`
}

type recordEventsResponse struct {
	Accepted int `json:"accepted"`
}

// RecordEvents handles POST /events.
func (h *BehaviorHandler) RecordEvents(w http.ResponseWriter, r *http.Request) {
	var req recordEventsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := behavior.RecordEventsInput{Events: make([]behavior.EventInput, 0, len(req.Events))}
	for _, e := range req.Events {
		input.Events = append(input.Events, behavior.EventInput{
			PostID:      e.PostID,
			EventType:   e.EventType,
			Timestamp:   e.Timestamp,
			DwellTimeMs: e.DwellTimeMs,
			Metadata:    e.Metadata,
			SessionID:   e.SessionID,
		})
	}

	accepted, err := h.svc.RecordEvents(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, recordEventsResponse{Accepted: accepted})
}

// Summary handles GET /summary?timeframe=.
func (h *BehaviorHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), r.URL.Query().Get("timeframe"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
