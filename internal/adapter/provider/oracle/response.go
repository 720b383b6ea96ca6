package oracle

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// Failure reasons carried by domain.OracleError.
const (
	ReasonTransport   = "transport"
	ReasonStatus      = "status"
	ReasonRateLimited = "rate_limited"
	ReasonBreakerOpen = "breaker_open"
	ReasonNoJSON      = "no_json"
	ReasonSchema      = "schema"
)

type wireResponse struct {
	Order json.RawMessage `json:"order"`
	Notes string          `json:"notes"`
}

// ParseResponse validates an oracle answer against the reorder schema:
// a JSON object whose "order" is an array of non-empty strings and whose
// optional "notes" is a string. Text around the object is ignored so that
// chat-style answers with code fences still parse. Any violation yields a
// *domain.OracleError.
func ParseResponse(raw []byte) (*domain.OracleResponse, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return nil, domain.NewOracleError(ReasonNoJSON, err)
	}

	dec := json.NewDecoder(bytes.NewReader(obj))
	dec.DisallowUnknownFields()

	var wire wireResponse
	if err := dec.Decode(&wire); err != nil {
		return nil, domain.NewOracleError(ReasonSchema, err)
	}

	if len(wire.Order) == 0 || bytes.Equal(bytes.TrimSpace(wire.Order), []byte("null")) {
		return nil, domain.NewOracleError(ReasonSchema, errors.New(`"order" is required`))
	}

	var order []string
	if err := json.Unmarshal(wire.Order, &order); err != nil {
		return nil, domain.NewOracleError(ReasonSchema, fmt.Errorf(`"order" must be an array of strings: %w`, err))
	}
	for i, id := range order {
		if id == "" {
			return nil, domain.NewOracleError(ReasonSchema, fmt.Errorf(`"order"[%d] is empty`, i))
		}
	}

	return &domain.OracleResponse{Order: order, Notes: wire.Notes}, nil
}

// extractObject returns the outermost {...} span of raw.
func extractObject(raw []byte) ([]byte, error) {
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, errors.New("no JSON object found in response")
	}
	return raw[start : end+1], nil
}
