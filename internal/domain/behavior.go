package domain

import (
	"time"

	"github.com/google/uuid"
)

// BehaviorEvent is a single user interaction. Immutable once written.
type BehaviorEvent struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	PostID      string        `json:"postId"`
	EventType   EventType     `json:"eventType"`
	Timestamp   time.Time     `json:"timestamp"`
	DwellTimeMs *int64        `json:"dwellTimeMs,omitempty"`
	Metadata    EventMetadata `json:"metadata"`
	SessionID   *string       `json:"sessionId,omitempty"`
}

// EventMetadata is the free-form context attached to an event by the client.
type EventMetadata struct {
	Tags        []string       `json:"tags,omitempty"`
	Creator     string         `json:"creator,omitempty"`
	ContentType string         `json:"contentType,omitempty"`
	Platform    string         `json:"platform,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// EngagementPatterns holds interaction ratios. Every value lies in [0,1].
type EngagementPatterns struct {
	SkipRate       float64 `json:"skipRate"`
	LikeRate       float64 `json:"likeRate"`
	ShareRate      float64 `json:"shareRate"`
	CommentRate    float64 `json:"commentRate"`
	EngagementRate float64 `json:"engagementRate"`
}

// ScrollBehavior describes how the user moves through content.
type ScrollBehavior struct {
	AvgDwellTimeMs float64     `json:"avgDwellTimeMs"`
	ScrollSpeed    ScrollSpeed `json:"scrollSpeed"`
	SessionTypes   []string    `json:"sessionTypes"`
}

// BehaviorSummary is the derived behavioral profile of one user over a timeframe.
type BehaviorSummary struct {
	TotalEvents               int                `json:"totalEvents"`
	TopTags                   []string           `json:"topTags"`
	TopCreators               []string           `json:"topCreators"`
	PreferredContentTypes     []string           `json:"preferredContentTypes"`
	AvgSessionDurationSeconds float64            `json:"avgSessionDurationSeconds"`
	PeakActivityHours         []int              `json:"peakActivityHours"`
	EngagementPatterns        EngagementPatterns `json:"engagementPatterns"`
	MoodIndicators            []string           `json:"moodIndicators"`
	ScrollBehavior            ScrollBehavior     `json:"scrollBehavior"`
	Timeframe                 Timeframe          `json:"timeframe"`
	GeneratedAt               time.Time          `json:"generatedAt"`
}

const (
	MoodNeutral = "neutral"

	// Session types reported in ScrollBehavior.SessionTypes.
	SessionTypeNormal      = "normal"
	SessionTypeQuickBrowse = "quick_browse"
	SessionTypeFocused     = "focused"
	SessionTypeDeepDive    = "deep_dive"

	MaxTopTags      = 10
	MaxTopCreators  = 10
	MaxContentTypes = 5
	MaxPeakHours    = 3
)

// DefaultBehaviorSummary returns the summary used when there is no data or aggregation fails.
func DefaultBehaviorSummary(tf Timeframe, now time.Time) BehaviorSummary {
	return BehaviorSummary{
		TopTags:               []string{},
		TopCreators:           []string{},
		PreferredContentTypes: []string{},
		PeakActivityHours:     []int{},
		MoodIndicators:        []string{MoodNeutral},
		ScrollBehavior: ScrollBehavior{
			ScrollSpeed:  ScrollSpeedMedium,
			SessionTypes: []string{SessionTypeNormal},
		},
		Timeframe:   tf,
		GeneratedAt: now,
	}
}

// HasTag reports whether tag (case-folded) is among the user's top tags.
func (s *BehaviorSummary) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, t := range s.TopTags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasCreator reports whether creator is among the user's top creators.
func (s *BehaviorSummary) HasCreator(creator string) bool {
	if creator == "" {
		return false
	}
	for _, c := range s.TopCreators {
		if c == creator {
			return true
		}
	}
	return false
}

// PrefersType reports whether the content type is among the preferred ones.
func (s *BehaviorSummary) PrefersType(t PostType) bool {
	for _, ct := range s.PreferredContentTypes {
		if ct == string(t) {
			return true
		}
	}
	return false
}

// HasSessionType reports whether sessionType was inferred for the user.
func (s *BehaviorSummary) HasSessionType(sessionType string) bool {
	for _, st := range s.ScrollBehavior.SessionTypes {
		if st == sessionType {
			return true
		}
	}
	return false
}

// EngagementStyle returns a coarse label used in compact oracle context.
func (s *BehaviorSummary) EngagementStyle() string {
	p := s.EngagementPatterns
	switch {
	case s.TotalEvents == 0:
		return "unknown"
	case p.SkipRate > 0.7:
		return "skimmer"
	case p.EngagementRate > 0.3:
		return "active"
	case p.LikeRate > 0.1 || p.CommentRate > 0.05:
		return "selective"
	default:
		return "lurker"
	}
}
