package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

type connectionStore interface {
	ListConnections(ctx context.Context, userID uuid.UUID) ([]domain.PlatformConnection, error)
	UpsertConnection(ctx context.Context, conn domain.PlatformConnection) error
	DeleteConnection(ctx context.Context, userID uuid.UUID, platform domain.Platform) error
}

type platformClient interface {
	FetchFeed(ctx context.Context, conn domain.PlatformConnection, limit int) ([]domain.RawPost, error)
	Supports(p domain.Platform) bool
}

type normalizer interface {
	NormalizeAll(raws []domain.RawPost, platform domain.Platform) []domain.NormalizedPost
}

type summarizer interface {
	GenerateSummary(ctx context.Context, userID uuid.UUID, timeframe domain.Timeframe) *domain.BehaviorSummary
}

type ranker interface {
	Lookup(ctx context.Context, key string) (*domain.RankedResult, bool)
	RankAndDecide(ctx context.Context, rc domain.RankingContext) *domain.RankedResult
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type rulesProvider interface {
	Rules(ctx context.Context, userID uuid.UUID) (domain.FeedRules, error)
}

// Config holds feed orchestration settings.
type Config struct {
	FetchTimeout     time.Duration
	PerPlatformLimit int
	DefaultLimit     int
	MaxLimit         int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:     5 * time.Second,
		PerPlatformLimit: 50,
		DefaultLimit:     20,
		MaxLimit:         100,
	}
}

// Service assembles a user's ranked feed from their connected platforms.
type Service struct {
	connections connectionStore
	client      platformClient
	normalizer  normalizer
	summarizer  summarizer
	ranker      ranker
	rules       rulesProvider
	cfg         Config
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new Feed service.
func NewService(
	log *slog.Logger,
	connections connectionStore,
	client platformClient,
	normalizer normalizer,
	summarizer summarizer,
	ranker ranker,
	rules rulesProvider,
	cfg Config,
) *Service {
	return &Service{
		connections: connections,
		client:      client,
		normalizer:  normalizer,
		summarizer:  summarizer,
		ranker:      ranker,
		rules:       rules,
		cfg:         cfg,
		log:         log.With("service", "feed"),
		now:         time.Now,
	}
}

// StaticRules serves the same feed rules to every user.
type StaticRules struct {
	Blocklist []string
	BoostTags []string
}

// Rules implements rulesProvider.
func (r StaticRules) Rules(context.Context, uuid.UUID) (domain.FeedRules, error) {
	return domain.FeedRules{Blocklist: r.Blocklist, BoostTags: r.BoostTags}, nil
}
