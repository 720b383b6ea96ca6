package feed

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
	"github.com/heartmarshall/feedsense-backend/internal/service/ranking"
	"github.com/heartmarshall/feedsense-backend/pkg/ctxutil"
	"golang.org/x/sync/errgroup"
)

// GetFeed returns the caller's ranked feed page. A cached page is returned
// as is. Otherwise connected platforms are fetched concurrently; a failing
// platform contributes nothing and does not affect the others.
func (s *Service) GetFeed(ctx context.Context, input GetFeedInput) (*domain.RankedResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxLimit); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.DefaultLimit
	}
	mode := domain.ParseSessionMode(input.Mode)

	key := ranking.RankedFeedKey(userID, limit, input.Offset, input.Intent, mode)
	if cached, ok := s.ranker.Lookup(ctx, key); ok {
		return cached, nil
	}

	candidates := s.collect(ctx, userID)
	summary := s.summarizer.GenerateSummary(ctx, userID, domain.Timeframe30d)

	rules, err := s.rules.Rules(ctx, userID)
	if err != nil {
		s.log.WarnContext(ctx, "feed rules unavailable, using defaults",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		rules = domain.FeedRules{}
	}

	return s.ranker.RankAndDecide(ctx, domain.RankingContext{
		UserID:      userID,
		Summary:     *summary,
		Candidates:  candidates,
		Intent:      input.Intent,
		SessionMode: mode,
		Limit:       limit,
		Offset:      input.Offset,
		Rules:       rules,
	}), nil
}

// collect fetches and normalizes posts from every connected platform.
// Duplicate post ids keep their first occurrence.
func (s *Service) collect(ctx context.Context, userID uuid.UUID) []domain.NormalizedPost {
	conns, err := s.connections.ListConnections(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "list connections failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if len(conns) == 0 {
		return nil
	}

	perPlatform := make([][]domain.NormalizedPost, len(conns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(conns))
	for i, conn := range conns {
		g.Go(func() error {
			perPlatform[i] = s.fetch(gctx, conn)
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.NormalizedPost
	seen := make(map[string]struct{})
	for _, posts := range perPlatform {
		for _, p := range posts {
			key := string(p.Platform) + ":" + p.ID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) fetch(ctx context.Context, conn domain.PlatformConnection) []domain.NormalizedPost {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	raws, err := s.client.FetchFeed(ctx, conn, s.cfg.PerPlatformLimit)
	if err != nil {
		metrics.PlatformFetches.WithLabelValues(conn.Platform.String(), "error").Inc()
		s.log.WarnContext(ctx, "platform fetch failed",
			slog.String("platform", conn.Platform.String()),
			slog.String("user_id", conn.UserID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}
	metrics.PlatformFetches.WithLabelValues(conn.Platform.String(), "success").Inc()

	return s.normalizer.NormalizeAll(raws, conn.Platform)
}
