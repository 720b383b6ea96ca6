package ranking

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
)

const (
	previewRunes       = 140
	oracleTagsPerPost  = 8
	oracleTopTags      = 10
	oracleFailedReason = "oracle_error"
)

func oracleRequest(rc *domain.RankingContext, posts []domain.NormalizedPost) domain.OracleRequest {
	summary := rc.Summary
	topTags := summary.TopTags
	if len(topTags) > oracleTopTags {
		topTags = topTags[:oracleTopTags]
	}

	candidates := make([]domain.OracleCandidate, len(posts))
	for i, p := range posts {
		tags := p.Tags
		if len(tags) > oracleTagsPerPost {
			tags = tags[:oracleTagsPerPost]
		}
		candidates[i] = domain.OracleCandidate{
			ID:          p.ID,
			Type:        p.Type,
			Tags:        tags,
			Creator:     p.Creator.Handle,
			Stats:       p.Stats,
			TextPreview: preview(p.Text, previewRunes),
		}
	}

	return domain.OracleRequest{
		UserContextSummary: domain.OracleUserContext{
			TopTags:         topTags,
			ScrollSpeed:     summary.ScrollBehavior.ScrollSpeed.String(),
			EngagementStyle: summary.EngagementStyle(),
			Mood:            summary.MoodIndicators,
		},
		CandidateSummaries: candidates,
		Intent:             rc.Intent,
		SessionMode:        rc.SessionMode,
	}
}

func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}

// rerank asks the oracle to reorder the first OracleMaxCandidates posts. The
// tail is appended in heuristic order. On any failure the input order is
// returned with applied=false.
func (s *Service) rerank(ctx context.Context, rc *domain.RankingContext, posts []domain.NormalizedPost) ([]domain.NormalizedPost, bool) {
	if s.oracle == nil || len(posts) == 0 {
		return posts, false
	}

	n := len(posts)
	if s.cfg.OracleMaxCandidates > 0 && n > s.cfg.OracleMaxCandidates {
		n = s.cfg.OracleMaxCandidates
	}
	head, tail := posts[:n], posts[n:]

	octx := ctx
	if s.cfg.OracleTimeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, s.cfg.OracleTimeout)
		defer cancel()
	}

	resp, err := s.oracle.Rerank(octx, oracleRequest(rc, head))
	if err != nil {
		if isDisabled(err) {
			metrics.RankingFallbacks.WithLabelValues("oracle_disabled").Inc()
			s.log.DebugContext(ctx, "oracle disabled, keeping heuristic order")
			return posts, false
		}
		metrics.RankingFallbacks.WithLabelValues(oracleFailedReason).Inc()
		s.log.WarnContext(ctx, "oracle rerank failed, keeping heuristic order",
			slog.String("user_id", rc.UserID.String()),
			slog.String("error", err.Error()),
		)
		return posts, false
	}

	ordered, ok := applyOrder(head, resp)
	if !ok {
		metrics.RankingFallbacks.WithLabelValues("oracle_invalid").Inc()
		s.log.WarnContext(ctx, "oracle order unusable, keeping heuristic order",
			slog.String("user_id", rc.UserID.String()),
		)
		return posts, false
	}

	return append(ordered, tail...), true
}

// applyOrder rebuilds head in the oracle's order. Unknown and repeated ids are
// ignored; posts the oracle did not mention follow in their prior order. It
// reports false when the response names none of the candidates.
func applyOrder(head []domain.NormalizedPost, resp *domain.OracleResponse) ([]domain.NormalizedPost, bool) {
	if resp == nil || len(resp.Order) == 0 {
		return nil, false
	}

	index := make(map[string]int, len(head))
	for i, p := range head {
		if _, dup := index[p.ID]; !dup {
			index[p.ID] = i
		}
	}

	used := make([]bool, len(head))
	out := make([]domain.NormalizedPost, 0, len(head))
	for _, id := range resp.Order {
		i, ok := index[id]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, head[i])
	}
	if len(out) == 0 {
		return nil, false
	}

	for i, p := range head {
		if !used[i] {
			out = append(out, p)
		}
	}
	return out, true
}
