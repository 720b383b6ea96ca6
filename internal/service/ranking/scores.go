package ranking

import "github.com/heartmarshall/feedsense-backend/internal/domain"

const (
	confidenceOracle    = 0.8
	confidenceHeuristic = 0.5
	confidenceHistory   = 0.2
	// historyEvents is the event count at which history confidence saturates.
	historyEvents  = 100
	diversityTypes = 5
)

// diversityScore averages creator and format spread over posts.
func diversityScore(posts []domain.NormalizedPost) float64 {
	n := len(posts)
	if n == 0 {
		return 0
	}
	creators := make(map[string]struct{}, n)
	types := make(map[domain.PostType]struct{}, diversityTypes)
	for _, p := range posts {
		creators[p.Creator.Handle] = struct{}{}
		types[p.Type] = struct{}{}
	}
	score := 0.5*float64(len(creators))/float64(n) +
		0.5*float64(len(types))/float64(min(n, diversityTypes))
	return clamp01(score)
}

func confidenceScore(oracleApplied bool, summary *domain.BehaviorSummary) float64 {
	base := confidenceHeuristic
	if oracleApplied {
		base = confidenceOracle
	}
	history := min(1, float64(summary.TotalEvents)/historyEvents)
	return clamp01(base + confidenceHistory*history)
}

func wantsShort(mode domain.SessionMode, summary *domain.BehaviorSummary) bool {
	switch mode {
	case domain.SessionModeQuick:
		return true
	case domain.SessionModeDeep, domain.SessionModeExplore:
		return false
	}
	return summary.ScrollBehavior.ScrollSpeed == domain.ScrollSpeedFast
}

func wantsLong(mode domain.SessionMode, summary *domain.BehaviorSummary) bool {
	switch mode {
	case domain.SessionModeDeep:
		return true
	case domain.SessionModeQuick, domain.SessionModeExplore:
		return false
	}
	return summary.ScrollBehavior.ScrollSpeed == domain.ScrollSpeedSlow ||
		summary.HasSessionType(domain.SessionTypeDeepDive)
}

// sessionOptimization names what the ordering favors. An explicit session mode
// wins over inferred scroll behavior.
func sessionOptimization(mode domain.SessionMode, summary *domain.BehaviorSummary) string {
	switch {
	case mode == domain.SessionModeExplore:
		return domain.OptimizationDiversity
	case wantsShort(mode, summary):
		return domain.OptimizationShortForm
	case wantsLong(mode, summary):
		return domain.OptimizationLongform
	default:
		return domain.OptimizationBalanced
	}
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
