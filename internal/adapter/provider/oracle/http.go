package oracle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

const maxResponseBytes = 1 << 20

// httpBackend posts the request as JSON to a ranking endpoint and returns the body.
type httpBackend struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func newHTTPBackend(endpoint, apiKey string) *httpBackend {
	return &httpBackend{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *httpBackend) Name() string { return "http" }

func (b *httpBackend) Complete(ctx context.Context, req domain.OracleRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewOracleError(ReasonTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if b.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewOracleError(ReasonTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NewOracleError(ReasonTransport, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewOracleError(ReasonStatus, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return body, nil
}
