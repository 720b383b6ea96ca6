package rest

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/service/normalize"
)

//go:generate moq -out formatter_mock_test.go -pkg rest . formatter

type formatter interface {
	FormatForPlatform(content string, hashtags []string, platform domain.Platform, maxLength int) string
	LimitsFor(platform domain.Platform) normalize.FormatLimits
}

// maxFormatContentRunes bounds the content accepted by POST /format.
const maxFormatContentRunes = 100_000

// FormatHandler shapes outgoing text for a platform.
type FormatHandler struct {
	svc formatter
	log *slog.Logger
}

// NewFormatHandler creates a FormatHandler.
func NewFormatHandler(svc formatter, logger *slog.Logger) *FormatHandler {
	return &FormatHandler{svc: svc, log: logger.With("handler", "format")}
}

type formatRequest struct {
	Content   string   `json:"content"`
	Hashtags  []string `json:"hashtags"`
	Platform  string   `json:"platform"`
	MaxLength int      `json:"maxLength"`
}

type formatResponse struct {
	Text        string `json:"text"`
	Length      int    `json:"length"`
	MaxLength   int    `json:"maxLength"`
	MaxHashtags int    `json:"maxHashtags"`
}

// Format handles POST /format.
func (h *FormatHandler) Format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	platform := domain.Platform(req.Platform)
	var errs []domain.FieldError
	if !platform.IsValid() {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "unsupported platform"})
	}
	if utf8.RuneCountInString(req.Content) > maxFormatContentRunes {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	if req.MaxLength < 0 {
		errs = append(errs, domain.FieldError{Field: "maxLength", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	limits := h.svc.LimitsFor(platform)
	text := h.svc.FormatForPlatform(req.Content, req.Hashtags, platform, req.MaxLength)

	effective := limits.MaxLength
	if req.MaxLength > 0 && req.MaxLength < effective {
		effective = req.MaxLength
	}

	writeJSON(w, http.StatusOK, formatResponse{
		Text:        text,
		Length:      utf8.RuneCountInString(text),
		MaxLength:   effective,
		MaxHashtags: limits.MaxHashtags,
	})
}
