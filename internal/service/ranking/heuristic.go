package ranking

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// Heuristic weights.
const (
	weightRecency    = 0.3
	weightEngagement = 0.4
	weightBoost      = 0.3
)

// recency is the number of hours left in the horizon; posts older than the
// horizon (or without a timestamp) score 0.
func recency(p domain.NormalizedPost, now time.Time, horizonHours float64) float64 {
	published := p.PublishedAt()
	if published.IsZero() {
		return 0
	}
	age := max(0, now.Sub(published).Hours())
	return max(0, horizonHours-age)
}

func heuristicScore(p domain.NormalizedPost, now time.Time, horizonHours float64) float64 {
	eng := float64(p.Stats.Engagement())
	return weightRecency*recency(p, now, horizonHours) +
		weightEngagement*math.Log(eng+1) +
		weightBoost*p.AIBoostScore
}

// sortByRecency orders newest first. Unparseable timestamps sort last.
func sortByRecency(posts []domain.NormalizedPost) {
	slices.SortStableFunc(posts, func(a, b domain.NormalizedPost) int {
		return b.PublishedAt().Compare(a.PublishedAt())
	})
}

// heuristicOrder sorts posts by heuristic score, descending. The sort is
// stable so ties keep their recency order.
func heuristicOrder(posts []domain.NormalizedPost, now time.Time, horizonHours float64) {
	type scored struct {
		post  domain.NormalizedPost
		score float64
	}
	items := make([]scored, len(posts))
	for i := range posts {
		items[i] = scored{post: posts[i], score: heuristicScore(posts[i], now, horizonHours)}
	}

	slices.SortStableFunc(items, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	for i := range items {
		posts[i] = items[i].post
	}
}
