package ranking

import "github.com/heartmarshall/feedsense-backend/internal/domain"

// Boost weights.
const (
	boostPerTag       = 2
	boostCreator      = 3
	boostFormat       = 1
	engagementTierLow = 100
	engagementTierTop = 1000
)

type tagSet map[string]struct{}

// boostTags joins rule boost tags and the user's top tags.
func boostTags(rules domain.FeedRules, summary *domain.BehaviorSummary) tagSet {
	set := make(tagSet, len(rules.BoostTags)+len(summary.TopTags))
	for _, src := range [][]string{rules.BoostTags, summary.TopTags} {
		for _, t := range src {
			if t = domain.NormalizeTag(t); t != "" {
				set[t] = struct{}{}
			}
		}
	}
	return set
}

// matchingTags returns the distinct post tags present in set, in post order.
func (set tagSet) matchingTags(p domain.NormalizedPost) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range p.Tags {
		t = domain.NormalizeTag(t)
		if _, ok := set[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func creatorAffinity(p domain.NormalizedPost, summary *domain.BehaviorSummary) bool {
	return summary.HasCreator(p.Creator.Handle) || summary.HasCreator(p.Creator.ID)
}

func engagementTier(eng int64) int {
	switch {
	case eng > engagementTierTop:
		return 2
	case eng > engagementTierLow:
		return 1
	default:
		return 0
	}
}

// boostScore is 2 per matching boost tag, 3 for a known creator, 1 for a
// preferred format, plus the engagement tier.
func boostScore(p domain.NormalizedPost, tags tagSet, summary *domain.BehaviorSummary) float64 {
	score := boostPerTag * len(tags.matchingTags(p))
	if creatorAffinity(p, summary) {
		score += boostCreator
	}
	if summary.PrefersType(p.Type) {
		score += boostFormat
	}
	score += engagementTier(p.Stats.Engagement())
	return float64(score)
}

func applyBoost(posts []domain.NormalizedPost, tags tagSet, summary *domain.BehaviorSummary) {
	for i := range posts {
		posts[i].AIBoostScore = boostScore(posts[i], tags, summary)
	}
}
