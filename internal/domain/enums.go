package domain

// EventType identifies the kind of user interaction captured by a BehaviorEvent.
type EventType string

const (
	EventTypeView    EventType = "view"
	EventTypeLike    EventType = "like"
	EventTypeSkip    EventType = "skip"
	EventTypeComment EventType = "comment"
	EventTypeShare   EventType = "share"
	EventTypeSave    EventType = "save"
	EventTypeClick   EventType = "click"
)

func (t EventType) String() string { return string(t) }

func (t EventType) IsValid() bool {
	switch t {
	case EventTypeView, EventTypeLike, EventTypeSkip, EventTypeComment,
		EventTypeShare, EventTypeSave, EventTypeClick:
		return true
	}
	return false
}

// Platform identifies an external social platform a post originates from.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformReddit    Platform = "reddit"
	PlatformTwitch    Platform = "twitch"
)

func (p Platform) String() string { return string(p) }

func (p Platform) IsValid() bool {
	switch p {
	case PlatformYouTube, PlatformTikTok, PlatformInstagram,
		PlatformTwitter, PlatformReddit, PlatformTwitch:
		return true
	}
	return false
}

// AllPlatforms returns every supported platform in a stable order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformYouTube, PlatformTikTok, PlatformInstagram,
		PlatformTwitter, PlatformReddit, PlatformTwitch,
	}
}

// PostType classifies the format of a normalized post.
type PostType string

const (
	PostTypeShort    PostType = "short"
	PostTypeLongform PostType = "longform"
	PostTypeImage    PostType = "image"
	PostTypeThread   PostType = "thread"
	PostTypeLive     PostType = "live"
)

func (t PostType) String() string { return string(t) }

func (t PostType) IsValid() bool {
	switch t {
	case PostTypeShort, PostTypeLongform, PostTypeImage, PostTypeThread, PostTypeLive:
		return true
	}
	return false
}

// ScrollSpeed is the coarse scrolling pace inferred from view dwell times.
type ScrollSpeed string

const (
	ScrollSpeedSlow   ScrollSpeed = "slow"
	ScrollSpeedMedium ScrollSpeed = "medium"
	ScrollSpeedFast   ScrollSpeed = "fast"
)

func (s ScrollSpeed) String() string { return string(s) }

func (s ScrollSpeed) IsValid() bool {
	switch s {
	case ScrollSpeedSlow, ScrollSpeedMedium, ScrollSpeedFast:
		return true
	}
	return false
}

// SessionMode is the caller-requested browsing mode for a feed request.
type SessionMode string

const (
	SessionModeDefault SessionMode = "default"
	SessionModeQuick   SessionMode = "quick"
	SessionModeDeep    SessionMode = "deep"
	SessionModeExplore SessionMode = "explore"
)

func (m SessionMode) String() string { return string(m) }

func (m SessionMode) IsValid() bool {
	switch m {
	case SessionModeDefault, SessionModeQuick, SessionModeDeep, SessionModeExplore:
		return true
	}
	return false
}

// ParseSessionMode maps a raw string to a SessionMode. Unknown values map to default.
func ParseSessionMode(s string) SessionMode {
	m := SessionMode(NormalizeText(s))
	if !m.IsValid() {
		return SessionModeDefault
	}
	return m
}

// Timeframe is the lookback window of a behavior summary.
type Timeframe string

const (
	Timeframe1d  Timeframe = "1d"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	Timeframe90d Timeframe = "90d"

	DefaultTimeframe = Timeframe30d
)

func (t Timeframe) String() string { return string(t) }

func (t Timeframe) IsValid() bool {
	switch t {
	case Timeframe1d, Timeframe7d, Timeframe30d, Timeframe90d:
		return true
	}
	return false
}

// Days returns the number of days covered by the timeframe.
// Unknown timeframes cover the default window.
func (t Timeframe) Days() int {
	switch t {
	case Timeframe1d:
		return 1
	case Timeframe7d:
		return 7
	case Timeframe90d:
		return 90
	default:
		return 30
	}
}

// ParseTimeframe maps a raw string to a Timeframe. Empty and unknown values map to 30d.
func ParseTimeframe(s string) Timeframe {
	t := Timeframe(NormalizeText(s))
	if !t.IsValid() {
		return DefaultTimeframe
	}
	return t
}

// AllTimeframes returns every supported timeframe.
func AllTimeframes() []Timeframe {
	return []Timeframe{Timeframe1d, Timeframe7d, Timeframe30d, Timeframe90d}
}

// ReasonCode is a deterministic ranking justification attached to a post.
type ReasonCode string

const (
	ReasonTagMatch        ReasonCode = "tag_match"
	ReasonCreatorAffinity ReasonCode = "creator_affinity"
	ReasonPreferredFormat ReasonCode = "preferred_format"
	ReasonHighEngagement  ReasonCode = "high_engagement"
	ReasonFresh           ReasonCode = "fresh"
	ReasonShortFormatFit  ReasonCode = "short_format_fit"
	ReasonDeepDiveFit     ReasonCode = "deep_dive_fit"
	ReasonIntentMatch     ReasonCode = "intent_match"
)

func (r ReasonCode) String() string { return string(r) }
