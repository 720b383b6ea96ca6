package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/adapter/cache/badgerkv"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/cache/memory"
	"github.com/heartmarshall/feedsense-backend/internal/config"
	"github.com/heartmarshall/feedsense-backend/internal/transport/rest"
)

// kvCache is the cache surface shared by the summarizer and the ranking funnel.
type kvCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// openCache builds the configured backend and starts its background
// maintenance, bound to ctx. The returned pinger is nil when the backend
// has nothing to probe.
func openCache(ctx context.Context, cfg config.CacheConfig, log *slog.Logger) (kvCache, rest.Pinger, error) {
	switch cfg.Backend {
	case "badger":
		c, err := badgerkv.Open(badgerkv.Options{Dir: cfg.BadgerDir, InMemory: cfg.InMemory}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger cache: %w", err)
		}
		c.StartGC(ctx, cfg.CleanupInterval)
		return c, c, nil
	case "memory":
		c := memory.New()
		c.StartJanitor(ctx, cfg.CleanupInterval)
		return c, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
