package ranking

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

type oracle interface {
	Rerank(ctx context.Context, req domain.OracleRequest) (*domain.OracleResponse, error)
}

type cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type postStore interface {
	UpsertPosts(ctx context.Context, posts []domain.NormalizedPost) (int, error)
}

// Config holds ranking funnel tunables.
type Config struct {
	CacheTTL            time.Duration
	OracleTimeout       time.Duration
	OracleMaxCandidates int
	ExplainTopN         int
	RecencyHorizonHours float64
	// Blocklist replaces DefaultBlocklist when feed rules carry none.
	Blocklist []string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:            5 * time.Minute,
		OracleTimeout:       8 * time.Second,
		OracleMaxCandidates: 50,
		ExplainTopN:         5,
		RecencyHorizonHours: 48,
	}
}

// Service orders candidate posts for a user.
type Service struct {
	oracle oracle
	cache  cache
	posts  postStore
	cfg    Config
	log    *slog.Logger
	now    func() time.Time

	// stages runs pipeline stages 2-5; replaced in tests to simulate failures.
	stages func(ctx context.Context, rc *domain.RankingContext, posts []domain.NormalizedPost, now time.Time) (stageResult, error)
}

// NewService creates a new Ranking service.
func NewService(
	log *slog.Logger,
	oracle oracle,
	cache cache,
	posts postStore,
	cfg Config,
) *Service {
	s := &Service{
		oracle: oracle,
		cache:  cache,
		posts:  posts,
		cfg:    cfg,
		log:    log.With("service", "ranking"),
		now:    time.Now,
	}
	s.stages = s.runStages
	return s
}

// RankedFeedKey is the cache key of one ranked page.
func RankedFeedKey(userID uuid.UUID, limit, offset int, intent string, mode domain.SessionMode) string {
	return rankedFeedPrefix(userID) +
		strconv.Itoa(limit) + ":" +
		strconv.Itoa(offset) + ":" +
		domain.NormalizeText(intent) + ":" +
		string(mode)
}

func rankedFeedPrefix(userID uuid.UUID) string {
	return "ranked_feed:" + userID.String() + ":"
}

// Invalidate drops every cached ranked page of the user.
func (s *Service) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return s.cache.DeletePrefix(ctx, rankedFeedPrefix(userID))
}
