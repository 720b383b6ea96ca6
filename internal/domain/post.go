package domain

import "time"

// RawPost is an untyped platform payload as returned by a platform client.
type RawPost map[string]any

// Creator identifies the author of a post.
type Creator struct {
	Handle         string  `json:"handle"`
	ID             string  `json:"id"`
	DisplayName    string  `json:"displayName"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// PostStats holds engagement counters. Values are never negative.
type PostStats struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Views    int64 `json:"views"`
}

// Engagement returns likes + comments + shares.
func (s PostStats) Engagement() int64 {
	return s.Likes + s.Comments + s.Shares
}

// NormalizedPost is the platform-agnostic representation of one content item.
type NormalizedPost struct {
	ID              string    `json:"id"`
	Platform        Platform  `json:"platform"`
	URL             string    `json:"url"`
	Type            PostType  `json:"type"`
	Creator         Creator   `json:"creator"`
	Text            string    `json:"text"`
	Tags            []string  `json:"tags"`
	Mentions        []string  `json:"mentions,omitempty"`
	DurationSeconds *int      `json:"durationSeconds,omitempty"`
	Stats           PostStats `json:"stats"`
	TimePublished   string    `json:"timePublished"`
	Thumbnail       *string   `json:"thumbnail,omitempty"`
	MediaURL        *string   `json:"mediaUrl,omitempty"`

	// Attached by the ranking funnel.
	AIBoostScore float64 `json:"aiBoostScore,omitempty"`
}

// PublishedAt parses TimePublished. The zero time is returned when it is unparseable.
func (p *NormalizedPost) PublishedAt() time.Time {
	t, err := time.Parse(time.RFC3339, p.TimePublished)
	if err != nil {
		return time.Time{}
	}
	return t
}

// PlaceholderCreator is attached to posts whose author could not be resolved.
func PlaceholderCreator() Creator {
	return Creator{
		Handle:      "unknown",
		ID:          "unknown",
		DisplayName: "Unknown creator",
	}
}
