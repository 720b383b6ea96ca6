package behavior

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
	"github.com/heartmarshall/feedsense-backend/pkg/ctxutil"
)

// GenerateSummary returns the user's behavior summary for timeframe. It never
// fails: cache and store errors degrade to a freshly computed or default summary.
// Unknown timeframes are treated as 30d.
func (s *Service) GenerateSummary(ctx context.Context, userID uuid.UUID, timeframe domain.Timeframe) *domain.BehaviorSummary {
	tf := domain.ParseTimeframe(string(timeframe))
	key := SummaryKey(userID, tf)

	if cached, ok := s.cachedSummary(ctx, key); ok {
		return cached
	}

	now := s.now()
	since := now.Add(-time.Duration(tf.Days()) * 24 * time.Hour)

	events, err := s.events.FindEvents(ctx, userID, since)
	if err != nil {
		s.log.WarnContext(ctx, "find events failed, using default summary",
			slog.String("user_id", userID.String()),
			slog.String("timeframe", tf.String()),
			slog.String("error", err.Error()),
		)
		metrics.SummaryFallbacks.WithLabelValues("store_error").Inc()
		def := domain.DefaultBehaviorSummary(tf, now)
		return &def
	}

	summary := s.aggregateSafe(ctx, userID, events, tf, now)
	s.storeSummary(ctx, key, summary)
	return &summary
}

// Summary returns the authenticated user's summary for the named timeframe.
func (s *Service) Summary(ctx context.Context, timeframe string) (*domain.BehaviorSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.GenerateSummary(ctx, userID, domain.Timeframe(timeframe)), nil
}

// UpdateUserSummary persists new events, invalidates the user's cached summaries
// and ranked feeds, recomputes the 30d summary and writes it onto the profile.
// Failures are logged and swallowed.
func (s *Service) UpdateUserSummary(ctx context.Context, userID uuid.UUID, events []domain.BehaviorEvent) {
	if len(events) > 0 {
		if err := s.events.InsertEvents(ctx, events); err != nil {
			s.log.ErrorContext(ctx, "insert events failed",
				slog.String("user_id", userID.String()),
				slog.Int("count", len(events)),
				slog.String("error", err.Error()),
			)
			metrics.PersistenceFailures.WithLabelValues("insert_events").Inc()
			return
		}
	}

	s.invalidate(ctx, userID)

	summary := s.GenerateSummary(ctx, userID, domain.Timeframe30d)
	if err := s.profiles.UpdateBehaviorSummary(ctx, userID, *summary); err != nil {
		s.log.ErrorContext(ctx, "update profile summary failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		metrics.PersistenceFailures.WithLabelValues("update_profile").Inc()
	}
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	tfs := domain.AllTimeframes()
	keys := make([]string, 0, len(tfs))
	for _, tf := range tfs {
		keys = append(keys, SummaryKey(userID, tf))
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "invalidate summaries failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
	if err := s.cache.DeletePrefix(ctx, RankedFeedPrefix(userID)); err != nil {
		s.log.WarnContext(ctx, "invalidate ranked feeds failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// aggregateSafe runs Aggregate, turning a panic into the default summary.
func (s *Service) aggregateSafe(ctx context.Context, userID uuid.UUID, events []domain.BehaviorEvent, tf domain.Timeframe, now time.Time) (summary domain.BehaviorSummary) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "aggregate panicked, using default summary",
				slog.String("user_id", userID.String()),
				slog.String("panic", fmt.Sprint(r)),
			)
			metrics.SummaryFallbacks.WithLabelValues("panic").Inc()
			summary = domain.DefaultBehaviorSummary(tf, now)
		}
	}()
	return s.aggregate(events, tf, now, s.cfg.Params)
}

func (s *Service) cachedSummary(ctx context.Context, key string) (*domain.BehaviorSummary, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	metrics.CacheResult("summary", ok, err)
	if err != nil {
		s.log.WarnContext(ctx, "summary cache get failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if !ok {
		s.log.DebugContext(ctx, "summary cache miss", slog.String("key", key))
		return nil, false
	}

	var summary domain.BehaviorSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		s.log.WarnContext(ctx, "summary cache entry undecodable",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return &summary, true
}

func (s *Service) storeSummary(ctx context.Context, key string, summary domain.BehaviorSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		s.log.WarnContext(ctx, "encode summary failed", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.log.WarnContext(ctx, "summary cache set failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
