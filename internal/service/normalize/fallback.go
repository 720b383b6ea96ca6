package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// PlaceholderText replaces empty post text.
const PlaceholderText = "[content unavailable]"

var (
	fallbackIDKeys        = []string{"id", "post_id", "postId", "uuid", "guid"}
	fallbackTextKeys      = []string{"text", "caption", "message", "title", "description", "body"}
	fallbackTimeKeys      = []string{"timePublished", "timestamp", "created_at", "createdAt", "created_time", "published_at", "publishedAt", "created_utc", "create_time", "date"}
	fallbackThumbnailKeys = []string{"thumbnail", "thumbnail_url", "thumbnailUrl", "cover_image_url", "picture", "image"}
	fallbackMediaKeys     = []string{"mediaUrl", "media_url", "video_url", "url"}
	fallbackURLKeys       = []string{"url", "permalink", "link", "share_url"}
)

// fallbackPost builds a minimal valid record from whatever fields raw carries.
// The creator is always the placeholder identity.
func fallbackPost(raw domain.RawPost, platform domain.Platform) domain.NormalizedPost {
	text := firstStr(raw, fallbackTextKeys...)
	duration := secondsPtr(num(raw, "duration"))
	if duration == nil {
		duration = ParseISODuration(str(raw, "duration"))
	}

	kind := kindText
	if duration != nil {
		kind = kindVideo
	}
	published, ok := firstTime(raw, fallbackTimeKeys...)

	post := domain.NormalizedPost{
		ID:              fallbackID(raw),
		Platform:        platform,
		URL:             firstStr(raw, fallbackURLKeys...),
		Type:            classify(kind, duration, text, true, domain.PostTypeShort),
		Creator:         domain.PlaceholderCreator(),
		Text:            text,
		Tags:            mergeTags(text, strList(raw, "tags"), ExtractHashtags(text)),
		Mentions:        ExtractMentions(text),
		DurationSeconds: duration,
		Stats: domain.PostStats{
			Likes:    max(count(raw, "likes"), count(raw, "like_count"), count(raw, "stats", "likes")),
			Comments: max(count(raw, "comments"), count(raw, "comment_count"), count(raw, "stats", "comments")),
			Shares:   max(count(raw, "shares"), count(raw, "share_count"), count(raw, "stats", "shares")),
			Views:    max(count(raw, "views"), count(raw, "view_count"), count(raw, "stats", "views")),
		},
		TimePublished: formatTime(published, ok),
		Thumbnail:     strPtr(firstStr(raw, fallbackThumbnailKeys...)),
		MediaURL:      strPtr(firstStr(raw, fallbackMediaKeys...)),
	}
	finalize(&post)
	return post
}

// fallbackID returns the raw id when present, else a content hash of the payload.
func fallbackID(raw domain.RawPost) string {
	if id := firstStr(raw, fallbackIDKeys...); id != "" {
		return id
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		return "fallback-unhashable"
	}
	sum := sha256.Sum256(payload)
	return "fallback-" + hex.EncodeToString(sum[:8])
}

// finalize fills the placeholders every record must carry.
func finalize(p *domain.NormalizedPost) {
	if p.Creator.Handle == "" && p.Creator.ID == "" {
		p.Creator = domain.PlaceholderCreator()
	} else {
		if p.Creator.Handle == "" {
			p.Creator.Handle = p.Creator.ID
		}
		if p.Creator.ID == "" {
			p.Creator.ID = p.Creator.Handle
		}
		if p.Creator.DisplayName == "" {
			p.Creator.DisplayName = p.Creator.Handle
		}
	}
	if p.Text == "" {
		p.Text = PlaceholderText
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if _, err := time.Parse(time.RFC3339, p.TimePublished); err != nil {
		p.TimePublished = formatTime(time.Time{}, false)
	}
	if p.DurationSeconds != nil && *p.DurationSeconds < 0 {
		p.DurationSeconds = nil
	}
	p.Stats.Likes = max(p.Stats.Likes, 0)
	p.Stats.Comments = max(p.Stats.Comments, 0)
	p.Stats.Shares = max(p.Stats.Shares, 0)
	p.Stats.Views = max(p.Stats.Views, 0)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
