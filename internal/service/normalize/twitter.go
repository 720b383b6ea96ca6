package normalize

import (
	"errors"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// twitterAdapter maps X/Twitter API v2 tweets with the author expansion inlined.
type twitterAdapter struct{}

func (twitterAdapter) Platform() domain.Platform    { return domain.PlatformTwitter }
func (twitterAdapter) DefaultType() domain.PostType { return domain.PostTypeShort }
func (twitterAdapter) Limits() FormatLimits         { return FormatLimits{MaxLength: 280, MaxHashtags: 2} }

func (a twitterAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

func (a twitterAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	id := str(raw, "id")
	if id == "" {
		return domain.NormalizedPost{}, errors.New("twitter: missing tweet id")
	}

	text := firstNonEmpty(str(raw, "note_tweet", "text"), str(raw, "text"))

	kind := kindText
	var (
		duration *int
		thumb    string
		media    string
	)
	for _, m := range maps(raw, "attachments", "media") {
		switch str(m, "type") {
		case "video", "animated_gif":
			kind = kindVideo
			if ms, ok := num(m, "duration_ms"); ok {
				duration = secondsPtr(ms/1000, true)
			}
			thumb = firstNonEmpty(thumb, str(m, "preview_image_url"))
			media = firstNonEmpty(media, str(m, "url"))
		case "photo":
			if kind == kindText {
				kind = kindImage
			}
			thumb = firstNonEmpty(thumb, str(m, "url"))
			media = firstNonEmpty(media, str(m, "url"))
		}
	}

	var entityTags, entityMentions []string
	for _, h := range maps(raw, "entities", "hashtags") {
		entityTags = append(entityTags, str(h, "tag"))
	}
	for _, m := range maps(raw, "entities", "mentions") {
		entityMentions = append(entityMentions, str(m, "username"))
	}

	username := str(raw, "author", "username")
	url := ""
	if username != "" {
		url = "https://x.com/" + username + "/status/" + id
	} else {
		url = "https://x.com/i/web/status/" + id
	}

	published, ok := timestamp(raw, "created_at")

	return domain.NormalizedPost{
		ID:       id,
		Platform: domain.PlatformTwitter,
		URL:      url,
		Type:     classify(kind, duration, text, true, a.DefaultType()),
		Creator: domain.Creator{
			Handle:         username,
			ID:             firstNonEmpty(str(raw, "author", "id"), str(raw, "author_id")),
			DisplayName:    firstNonEmpty(str(raw, "author", "name"), username),
			ProfilePicture: strPtr(str(raw, "author", "profile_image_url")),
		},
		Text:            text,
		Tags:            mergeTags(text, entityTags, ExtractHashtags(text)),
		Mentions:        mergeTags("", entityMentions, ExtractMentions(text)),
		DurationSeconds: duration,
		Stats: domain.PostStats{
			Likes:    count(raw, "public_metrics", "like_count"),
			Comments: count(raw, "public_metrics", "reply_count"),
			Shares:   count(raw, "public_metrics", "retweet_count") + count(raw, "public_metrics", "quote_count"),
			Views:    count(raw, "public_metrics", "impression_count"),
		},
		TimePublished: formatTime(published, ok),
		Thumbnail:     strPtr(thumb),
		MediaURL:      strPtr(media),
	}, nil
}
