package behavior

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

type eventStore interface {
	InsertEvents(ctx context.Context, events []domain.BehaviorEvent) error
	FindEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.BehaviorEvent, error)
}

type cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type profileStore interface {
	UpdateBehaviorSummary(ctx context.Context, userID uuid.UUID, summary domain.BehaviorSummary) error
}

// Config holds summarizer tunables.
type Config struct {
	CacheTTL   time.Duration
	FutureSkew time.Duration
	Params     Params
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:   15 * time.Minute,
		FutureSkew: 5 * time.Minute,
		Params:     DefaultParams(),
	}
}

// Service turns raw interaction events into behavior summaries.
type Service struct {
	events   eventStore
	cache    cache
	profiles profileStore
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
	pending  sync.WaitGroup

	aggregate func([]domain.BehaviorEvent, domain.Timeframe, time.Time, Params) domain.BehaviorSummary
}

// NewService creates a new Behavior service.
func NewService(
	log *slog.Logger,
	events eventStore,
	cache cache,
	profiles profileStore,
	cfg Config,
) *Service {
	return &Service{
		events:   events,
		cache:    cache,
		profiles: profiles,
		cfg:      cfg,
		log:      log.With("service", "behavior"),
		now:      time.Now,

		aggregate: Aggregate,
	}
}

// SummaryKey is the cache key of a user's summary for one timeframe.
func SummaryKey(userID uuid.UUID, tf domain.Timeframe) string {
	return "summary:" + userID.String() + ":" + string(tf)
}

// RankedFeedPrefix is the cache key prefix shared by every ranked feed of a user.
func RankedFeedPrefix(userID uuid.UUID) string {
	return "ranked_feed:" + userID.String() + ":"
}

// Drain blocks until every background summary update has finished or ctx is done.
func (s *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
