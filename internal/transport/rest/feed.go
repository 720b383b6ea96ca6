package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/service/feed"
)

//go:generate moq -out feed_service_mock_test.go -pkg rest . feedService

type feedService interface {
	GetFeed(ctx context.Context, input feed.GetFeedInput) (*domain.RankedResult, error)
	Connect(ctx context.Context, input feed.ConnectInput) (*domain.PlatformConnection, error)
	Disconnect(ctx context.Context, platform string) error
}

// FeedHandler serves the ranked feed and platform connection endpoints.
type FeedHandler struct {
	svc feedService
	log *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(svc feedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{svc: svc, log: logger.With("handler", "feed")}
}

type connectRequest struct {
	ExternalUserID string `json:"externalUserId"`
	AccessToken    string `json:"accessToken"`
}

type connectionResponse struct {
	Platform       domain.Platform `json:"platform"`
	ExternalUserID string          `json:"externalUserId,omitempty"`
	ConnectedAt    time.Time       `json:"connectedAt"`
}

// GetFeed handles GET /feed?limit=&offset=&intent=&mode=.
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var errs []domain.FieldError
	limit, ok := intParam(q.Get("limit"))
	if !ok {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
	}
	offset, ok := intParam(q.Get("offset"))
	if !ok {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	result, err := h.svc.GetFeed(r.Context(), feed.GetFeedInput{
		Limit:  limit,
		Offset: offset,
		Intent: q.Get("intent"),
		Mode:   q.Get("mode"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Connect handles PUT /connections/{platform}.
func (h *FeedHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	conn, err := h.svc.Connect(r.Context(), feed.ConnectInput{
		Platform:       r.PathValue("platform"),
		ExternalUserID: req.ExternalUserID,
		AccessToken:    req.AccessToken,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, connectionResponse{
		Platform:       conn.Platform,
		ExternalUserID: conn.ExternalUserID,
		ConnectedAt:    conn.ConnectedAt,
	})
}

// Disconnect handles DELETE /connections/{platform}.
func (h *FeedHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Disconnect(r.Context(), r.PathValue("platform")); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// intParam parses an optional integer query value; empty yields 0.
func intParam(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
