// Package oracle implements the ranking oracle: an external reranker that
// returns a reorder of feed candidates. Calls are rate limited, guarded by a
// circuit breaker, and strictly validated.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/feedsense-backend/internal/config"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
)

// Backend names accepted in config.
const (
	BackendNone   = "none"
	BackendClaude = "claude"
	BackendHTTP   = "http"
)

// backend produces the raw oracle answer for one request.
type backend interface {
	Name() string
	Complete(ctx context.Context, req domain.OracleRequest) ([]byte, error)
}

// Client is the ranking oracle. A Client without a backend is disabled and
// answers every call with domain.ErrOracleDisabled.
type Client struct {
	backend backend
	breaker *gobreaker.CircuitBreaker[*domain.OracleResponse]
	limiter *rate.Limiter
	log     *slog.Logger
}

// New builds the oracle selected by cfg.Backend.
func New(log *slog.Logger, cfg config.OracleConfig) (*Client, error) {
	log = log.With("adapter", "oracle")

	switch cfg.Backend {
	case "", BackendNone:
		return &Client{log: log}, nil
	case BackendClaude:
		return newClient(log, newClaudeBackend(cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Endpoint), cfg), nil
	case BackendHTTP:
		return newClient(log, newHTTPBackend(cfg.Endpoint, cfg.APIKey), cfg), nil
	default:
		return nil, fmt.Errorf("oracle: unknown backend %q", cfg.Backend)
	}
}

func newClient(log *slog.Logger, b backend, cfg config.OracleConfig) *Client {
	name := b.Name()
	metrics.OracleBreakerState.WithLabelValues(name).Set(0)

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &Client{
		backend: b,
		breaker: gobreaker.NewCircuitBreaker[*domain.OracleResponse](gobreaker.Settings{
			Name:        "oracle-" + name,
			MaxRequests: 1,
			Timeout:     cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(_ string, from, to gobreaker.State) {
				log.Warn("oracle breaker state changed",
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
				metrics.OracleBreakerState.WithLabelValues(name).Set(stateValue(to))
			},
		}),
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// Enabled reports whether the client has a backend.
func (c *Client) Enabled() bool { return c.backend != nil }

// Rerank asks the backend for a reorder of req's candidates. Every failure is
// a *domain.OracleError except the disabled case, which is domain.ErrOracleDisabled.
func (c *Client) Rerank(ctx context.Context, req domain.OracleRequest) (*domain.OracleResponse, error) {
	if c.backend == nil {
		return nil, domain.ErrOracleDisabled
	}
	name := c.backend.Name()
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.OracleRequests.WithLabelValues(name, "error").Inc()
		return nil, domain.NewOracleError(ReasonRateLimited, err)
	}

	resp, err := c.breaker.Execute(func() (*domain.OracleResponse, error) {
		raw, err := c.backend.Complete(ctx, req)
		if err != nil {
			return nil, err
		}
		return ParseResponse(raw)
	})
	if err != nil {
		return nil, c.fail(ctx, name, err)
	}

	metrics.OracleRequests.WithLabelValues(name, "success").Inc()
	c.log.DebugContext(ctx, "oracle rerank",
		slog.Int("candidates", len(req.CandidateSummaries)),
		slog.Int("order", len(resp.Order)),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func (c *Client) fail(ctx context.Context, name string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.OracleRequests.WithLabelValues(name, "breaker_open").Inc()
		return domain.NewOracleError(ReasonBreakerOpen, err)
	}

	var oe *domain.OracleError
	if !errors.As(err, &oe) {
		oe = domain.NewOracleError(ReasonTransport, err)
	}

	outcome := "error"
	if oe.Reason == ReasonSchema || oe.Reason == ReasonNoJSON {
		outcome = "invalid"
	}
	metrics.OracleRequests.WithLabelValues(name, outcome).Inc()
	c.log.DebugContext(ctx, "oracle call failed",
		slog.String("reason", oe.Reason),
		slog.String("error", err.Error()),
	)
	return oe
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
