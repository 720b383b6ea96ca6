package behavior

import "github.com/heartmarshall/feedsense-backend/internal/domain"

// Mood tags reported in BehaviorSummary.MoodIndicators.
const (
	MoodQuickHits   = "quick_hits"
	MoodEngaged     = "engaged"
	MoodPassive     = "passive"
	MoodExploratory = "exploratory"
)

type moodRule struct {
	tag   string
	match func(s domain.BehaviorSummary) bool
}

// moodRules are evaluated independently, in order; every match appends its tag.
var moodRules = []moodRule{
	{MoodQuickHits, func(s domain.BehaviorSummary) bool { return s.EngagementPatterns.SkipRate > 0.7 }},
	{MoodEngaged, func(s domain.BehaviorSummary) bool { return s.EngagementPatterns.LikeRate > 0.3 }},
	{MoodPassive, func(s domain.BehaviorSummary) bool { return s.TotalEvents < 50 }},
	{MoodExploratory, func(s domain.BehaviorSummary) bool { return s.TotalEvents > 200 }},
}

func inferMood(s domain.BehaviorSummary) []string {
	return applyMoodRules(moodRules, s)
}

func applyMoodRules(rules []moodRule, s domain.BehaviorSummary) []string {
	var moods []string
	for _, r := range rules {
		if r.match(s) {
			moods = append(moods, r.tag)
		}
	}
	if len(moods) == 0 {
		return []string{domain.MoodNeutral}
	}
	return moods
}
