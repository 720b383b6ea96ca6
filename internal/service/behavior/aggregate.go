package behavior

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// Params are the thresholds used by Aggregate.
type Params struct {
	SessionGap    time.Duration
	FastDwell     time.Duration
	SlowDwell     time.Duration
	DeepDiveDwell time.Duration
}

// DefaultParams returns the standard thresholds.
func DefaultParams() Params {
	return Params{
		SessionGap:    30 * time.Minute,
		FastDwell:     3 * time.Second,
		SlowDwell:     10 * time.Second,
		DeepDiveDwell: 15 * time.Second,
	}
}

// Aggregate computes a summary from events. It is pure: the input slice is not
// modified and the result depends only on its arguments.
func Aggregate(events []domain.BehaviorEvent, tf domain.Timeframe, now time.Time, p Params) domain.BehaviorSummary {
	if len(events) == 0 {
		return domain.DefaultBehaviorSummary(tf, now)
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b domain.BehaviorEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	s := domain.BehaviorSummary{
		TotalEvents:               len(sorted),
		AvgSessionDurationSeconds: avgSessionDuration(sorted, p.SessionGap),
		EngagementPatterns:        engagementPatterns(sorted),
		ScrollBehavior:            scrollBehavior(sorted, p),
		Timeframe:                 tf,
		GeneratedAt:               now,
	}

	tags := newTally[string]()
	creators := newTally[string]()
	types := newTally[string]()
	hours := newTally[int]()
	for _, e := range sorted {
		for _, t := range e.Metadata.Tags {
			addNonEmpty(tags, normalizeTag(t))
		}
		addNonEmpty(creators, strings.TrimSpace(e.Metadata.Creator))
		addNonEmpty(types, domain.NormalizeText(e.Metadata.ContentType))
		hours.add(e.Timestamp.Hour())
	}
	s.TopTags = tags.top(domain.MaxTopTags)
	s.TopCreators = creators.top(domain.MaxTopCreators)
	s.PreferredContentTypes = types.top(domain.MaxContentTypes)
	s.PeakActivityHours = hours.top(domain.MaxPeakHours)
	s.MoodIndicators = inferMood(s)

	return s
}

// avgSessionDuration splits chronologically sorted events into sessions on gaps
// larger than gap and returns the mean session span in seconds. Single-event
// sessions contribute zero but are counted.
func avgSessionDuration(sorted []domain.BehaviorEvent, gap time.Duration) float64 {
	var (
		sessions int
		total    time.Duration
		start    = sorted[0].Timestamp
		last     = sorted[0].Timestamp
	)
	for _, e := range sorted[1:] {
		if e.Timestamp.Sub(last) > gap {
			total += last.Sub(start)
			sessions++
			start = e.Timestamp
		}
		last = e.Timestamp
	}
	total += last.Sub(start)
	sessions++

	return total.Seconds() / float64(sessions)
}

func engagementPatterns(events []domain.BehaviorEvent) domain.EngagementPatterns {
	var views, skips, likes, shares, comments int
	for _, e := range events {
		switch e.EventType {
		case domain.EventTypeView:
			views++
		case domain.EventTypeSkip:
			skips++
		case domain.EventTypeLike:
			likes++
		case domain.EventTypeShare:
			shares++
		case domain.EventTypeComment:
			comments++
		}
	}

	return domain.EngagementPatterns{
		SkipRate:       ratio(skips, views+skips),
		LikeRate:       ratio(likes, views),
		ShareRate:      ratio(shares, views),
		CommentRate:    ratio(comments, views),
		EngagementRate: ratio(likes+comments+shares, views),
	}
}

func scrollBehavior(events []domain.BehaviorEvent, p Params) domain.ScrollBehavior {
	var (
		sum     int64
		samples int
	)
	for _, e := range events {
		if e.EventType != domain.EventTypeView || e.DwellTimeMs == nil || *e.DwellTimeMs < 0 {
			continue
		}
		sum += *e.DwellTimeMs
		samples++
	}

	sb := domain.ScrollBehavior{ScrollSpeed: domain.ScrollSpeedMedium}
	if samples == 0 {
		sb.SessionTypes = []string{domain.SessionTypeNormal}
		return sb
	}

	sb.AvgDwellTimeMs = float64(sum) / float64(samples)
	switch {
	case sb.AvgDwellTimeMs < float64(p.FastDwell.Milliseconds()):
		sb.ScrollSpeed = domain.ScrollSpeedFast
		sb.SessionTypes = append(sb.SessionTypes, domain.SessionTypeQuickBrowse)
	case sb.AvgDwellTimeMs > float64(p.SlowDwell.Milliseconds()):
		sb.ScrollSpeed = domain.ScrollSpeedSlow
		sb.SessionTypes = append(sb.SessionTypes, domain.SessionTypeFocused)
	}
	if sb.AvgDwellTimeMs > float64(p.DeepDiveDwell.Milliseconds()) {
		sb.SessionTypes = append(sb.SessionTypes, domain.SessionTypeDeepDive)
	}
	if len(sb.SessionTypes) == 0 {
		sb.SessionTypes = []string{domain.SessionTypeNormal}
	}
	return sb
}

// ratio returns num/den clamped to [0,1]; a non-positive denominator yields 0.
func ratio(num, den int) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	return min(float64(num)/float64(den), 1)
}

// tally counts occurrences while remembering first-seen order for tie-breaks.
type tally[K comparable] struct {
	counts map[K]int
	order  []K
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) add(k K) {
	if _, seen := t.counts[k]; !seen {
		t.order = append(t.order, k)
	}
	t.counts[k]++
}

func addNonEmpty(t *tally[string], s string) {
	if s != "" {
		t.add(s)
	}
}

func normalizeTag(t string) string {
	return domain.NormalizeTag(t)
}

// top returns up to n keys by descending count; ties keep first-seen order.
func (t *tally[K]) top(n int) []K {
	keys := slices.Clone(t.order)
	slices.SortStableFunc(keys, func(a, b K) int {
		return cmp.Compare(t.counts[b], t.counts[a])
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	if keys == nil {
		keys = []K{}
	}
	return keys
}
