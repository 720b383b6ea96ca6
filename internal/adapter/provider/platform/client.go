// Package platform fetches raw feed items from per-platform HTTP gateways.
package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

const maxBodyBytes = 8 << 20

// Client fetches feeds from gateways that serve GET {base}/feed as JSON.
// The body is either an array of items or an object wrapping one under
// "items", "data" or "posts". A wrapped listing may nest the array under "children".
type Client struct {
	baseURLs   map[domain.Platform]string
	limiters   map[domain.Platform]*rate.Limiter
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewClient creates a Client for the platforms present in baseURLs.
// ratePerSecond <= 0 disables rate limiting.
func NewClient(log *slog.Logger, baseURLs map[string]string, ratePerSecond float64) *Client {
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}

	c := &Client{
		baseURLs:   make(map[domain.Platform]string, len(baseURLs)),
		limiters:   make(map[domain.Platform]*rate.Limiter, len(baseURLs)),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retryDelay: 500 * time.Millisecond,
		log:        log.With("adapter", "platform"),
	}
	for name, base := range baseURLs {
		p := domain.Platform(name)
		c.baseURLs[p] = strings.TrimRight(base, "/")
		c.limiters[p] = rate.NewLimiter(limit, 1)
	}
	return c
}

// Supports reports whether a gateway is configured for p.
func (c *Client) Supports(p domain.Platform) bool {
	_, ok := c.baseURLs[p]
	return ok
}

// FetchFeed returns up to limit raw items for conn.
// Returns an error wrapping domain.ErrUnsupportedPlatform when no gateway is configured.
func (c *Client) FetchFeed(ctx context.Context, conn domain.PlatformConnection, limit int) ([]domain.RawPost, error) {
	base, ok := c.baseURLs[conn.Platform]
	if !ok {
		return nil, fmt.Errorf("platform %s: %w", conn.Platform, domain.ErrUnsupportedPlatform)
	}

	if err := c.limiters[conn.Platform].Wait(ctx); err != nil {
		return nil, fmt.Errorf("platform %s: rate limiter: %w", conn.Platform, err)
	}

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if conn.ExternalUserID != "" {
		q.Set("user", conn.ExternalUserID)
	}
	reqURL := base + "/feed"
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	body, err := c.get(ctx, reqURL, conn)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", conn.Platform, err)
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", conn.Platform, err)
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	c.log.DebugContext(ctx, "platform feed fetched",
		slog.String("platform", string(conn.Platform)),
		slog.Int("items", len(items)),
	)
	return items, nil
}

func (c *Client) get(ctx context.Context, reqURL string, conn domain.PlatformConnection) ([]byte, error) {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if conn.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+conn.AccessToken)
		}
		return req, nil
	}, conn.Platform)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// maxRetryAfter bounds how long a 429 Retry-After is honoured; longer waits are not retried.
const maxRetryAfter = 5 * time.Second

// doWithRetry executes the request with a single retry on network errors,
// 5xx and 429. A 429 waits for its Retry-After when one is given.
func (c *Client) doWithRetry(ctx context.Context, newReq func() (*http.Request, error), p domain.Platform) (*http.Response, error) {
	req, err := newReq()
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)

	delay := c.retryDelay
	shouldRetry := err != nil || resp.StatusCode >= 500
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		wait, ok := retryAfter(resp.Header.Get("Retry-After"))
		if ok {
			delay = wait
		}
		shouldRetry = delay <= maxRetryAfter
	}
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "platform retry",
		slog.String("platform", string(p)),
		slog.String("reason", reason),
		slog.Duration("delay", delay),
	)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	req, err = newReq()
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(time.Until(at), 0), true
	}
	return 0, false
}

var errNoItems = errors.New("response has no item list")

func decodeItems(body []byte) ([]domain.RawPost, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errNoItems
	}

	if body[0] == '[' {
		var items []domain.RawPost
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, key := range []string{"items", "data", "posts"} {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		return decodeList(key, raw)
	}
	return nil, errNoItems
}

// decodeList accepts an array or a listing object {"children": [...]}.
func decodeList(key string, raw json.RawMessage) ([]domain.RawPost, error) {
	var items []domain.RawPost
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var listing struct {
		Children []domain.RawPost `json:"children"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil || listing.Children == nil {
		return nil, fmt.Errorf("decode %s: not a list", key)
	}
	return listing.Children, nil
}
