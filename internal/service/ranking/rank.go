package ranking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
)

var errStagePanic = errors.New("ranking stage panic")

type stageResult struct {
	posts         []domain.NormalizedPost
	oracleApplied bool
}

// RankAndDecide orders rc.Candidates for the user and returns the requested
// page. It degrades instead of failing: oracle problems keep the heuristic
// order, and errors or panics in the scoring stages fall back to a plain
// recency + engagement + boost ordering. The result is empty only when no
// candidate survives the safety pre-filter.
func (s *Service) RankAndDecide(ctx context.Context, rc domain.RankingContext) *domain.RankedResult {
	start := time.Now()
	defer metrics.ObserveRanking(start)

	now := s.now()
	if !rc.SessionMode.IsValid() {
		rc.SessionMode = domain.SessionModeDefault
	}

	candidates := slices.Clone(rc.Candidates)
	sortByRecency(candidates)
	candidates = prefilter(candidates, s.blocklist(rc.Rules))

	if len(candidates) == 0 {
		s.log.InfoContext(ctx, "no eligible candidates",
			slog.String("user_id", rc.UserID.String()),
			slog.Int("received", len(rc.Candidates)),
		)
		return &domain.RankedResult{
			Posts:               []domain.NormalizedPost{},
			Explanations:        map[string]string{},
			SessionOptimization: sessionOptimization(rc.SessionMode, &rc.Summary),
			ConfidenceScore:     confidenceScore(false, &rc.Summary),
			Message:             domain.MessageNoCandidates,
			GeneratedAt:         now,
		}
	}

	res, err := s.stagesSafe(ctx, &rc, slices.Clone(candidates), now)
	if err != nil {
		s.log.ErrorContext(ctx, "ranking stages failed, using heuristic fallback",
			slog.String("user_id", rc.UserID.String()),
			slog.String("error", err.Error()),
		)
		reason := "stage_error"
		if errors.Is(err, errStagePanic) {
			reason = "panic"
		}
		metrics.RankingFallbacks.WithLabelValues(reason).Inc()
		res = stageResult{posts: s.fallbackOrder(&rc, candidates, now)}
	}

	page := window(res.posts, rc.Limit, rc.Offset)
	result := &domain.RankedResult{
		Posts:               page,
		Explanations:        s.explanationsSafe(ctx, page, &rc, now),
		DiversityScore:      diversityScore(page),
		SessionOptimization: sessionOptimization(rc.SessionMode, &rc.Summary),
		ConfidenceScore:     confidenceScore(res.oracleApplied, &rc.Summary),
		OracleApplied:       res.oracleApplied,
		TotalCandidates:     len(res.posts),
		GeneratedAt:         now,
	}

	s.store(ctx, &rc, result)
	s.persist(ctx, page)

	s.log.InfoContext(ctx, "feed ranked",
		slog.String("user_id", rc.UserID.String()),
		slog.Int("candidates", len(res.posts)),
		slog.Int("returned", len(page)),
		slog.Bool("oracle_applied", res.oracleApplied),
	)
	return result
}

// Lookup returns a cached ranked page. Cache errors and undecodable entries are misses.
func (s *Service) Lookup(ctx context.Context, key string) (*domain.RankedResult, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	metrics.CacheResult("ranked_feed", ok, err)
	if err != nil {
		s.log.WarnContext(ctx, "ranked feed cache get failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if !ok {
		s.log.DebugContext(ctx, "ranked feed cache miss", slog.String("key", key))
		return nil, false
	}

	var result domain.RankedResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.log.WarnContext(ctx, "ranked feed cache entry undecodable",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return &result, true
}

// runStages applies boost scoring, the heuristic pre-rank and the oracle rerank.
func (s *Service) runStages(ctx context.Context, rc *domain.RankingContext, posts []domain.NormalizedPost, now time.Time) (stageResult, error) {
	applyBoost(posts, boostTags(rc.Rules, &rc.Summary), &rc.Summary)
	heuristicOrder(posts, now, s.cfg.RecencyHorizonHours)

	ordered, applied := s.rerank(ctx, rc, posts)
	if len(ordered) != len(posts) {
		return stageResult{}, fmt.Errorf("rerank returned %d of %d posts", len(ordered), len(posts))
	}
	return stageResult{posts: ordered, oracleApplied: applied}, nil
}

func (s *Service) stagesSafe(ctx context.Context, rc *domain.RankingContext, posts []domain.NormalizedPost, now time.Time) (res stageResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errStagePanic, r)
		}
	}()
	return s.stages(ctx, rc, posts, now)
}

// fallbackOrder is the heuristic ordering with boost computed defensively:
// if boost scoring itself panics, every boost is 0.
func (s *Service) fallbackOrder(rc *domain.RankingContext, posts []domain.NormalizedPost, now time.Time) []domain.NormalizedPost {
	out := slices.Clone(posts)
	func() {
		defer func() {
			if recover() != nil {
				for i := range out {
					out[i].AIBoostScore = 0
				}
			}
		}()
		applyBoost(out, boostTags(rc.Rules, &rc.Summary), &rc.Summary)
	}()
	heuristicOrder(out, now, s.cfg.RecencyHorizonHours)
	return out
}

func (s *Service) explanationsSafe(ctx context.Context, page []domain.NormalizedPost, rc *domain.RankingContext, now time.Time) (out map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "explanations panicked", slog.String("panic", fmt.Sprint(r)))
			out = map[string]string{}
		}
	}()
	return s.explanations(page, explainInput{
		summary: &rc.Summary,
		tags:    boostTags(rc.Rules, &rc.Summary),
		intent:  intentTerms(rc.Intent),
		mode:    rc.SessionMode,
		now:     now,
	})
}

// window returns posts[offset:offset+limit], clamped. limit <= 0 means no limit.
func window(posts []domain.NormalizedPost, limit, offset int) []domain.NormalizedPost {
	offset = max(0, offset)
	if offset >= len(posts) {
		return []domain.NormalizedPost{}
	}
	end := len(posts)
	if limit > 0 {
		end = min(end, offset+limit)
	}
	return slices.Clone(posts[offset:end])
}

func (s *Service) store(ctx context.Context, rc *domain.RankingContext, result *domain.RankedResult) {
	key := RankedFeedKey(rc.UserID, rc.Limit, rc.Offset, rc.Intent, rc.SessionMode)
	data, err := json.Marshal(result)
	if err != nil {
		s.log.WarnContext(ctx, "encode ranked feed failed", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.log.WarnContext(ctx, "ranked feed cache set failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// persist upserts the returned posts. Failures are logged and swallowed.
func (s *Service) persist(ctx context.Context, posts []domain.NormalizedPost) {
	if len(posts) == 0 {
		return
	}
	if _, err := s.posts.UpsertPosts(ctx, posts); err != nil {
		s.log.ErrorContext(ctx, "upsert posts failed",
			slog.Int("count", len(posts)),
			slog.String("error", err.Error()),
		)
		metrics.PersistenceFailures.WithLabelValues("upsert_posts").Inc()
	}
}

func isDisabled(err error) bool {
	return errors.Is(err, domain.ErrOracleDisabled)
}
