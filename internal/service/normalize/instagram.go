package normalize

import (
	"errors"
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// instagramAdapter maps Instagram Graph API media objects.
type instagramAdapter struct{}

func (instagramAdapter) Platform() domain.Platform    { return domain.PlatformInstagram }
func (instagramAdapter) DefaultType() domain.PostType { return domain.PostTypeImage }
func (instagramAdapter) Limits() FormatLimits {
	return FormatLimits{MaxLength: 2200, MaxHashtags: 30, LineBreaks: true, ParagraphRunes: 200}
}

func (a instagramAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

func (a instagramAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	id := str(raw, "id")
	if id == "" {
		return domain.NormalizedPost{}, errors.New("instagram: missing media id")
	}

	caption := str(raw, "caption")
	mediaType := strings.ToUpper(str(raw, "media_type"))
	product := strings.ToUpper(str(raw, "media_product_type"))
	duration := secondsPtr(num(raw, "video_duration"))

	var typ domain.PostType
	switch {
	case product == "REELS" || mediaType == "REELS":
		// Reels are short-form by product definition unless a longer duration is reported.
		typ = classify(kindVideo, duration, caption, true, domain.PostTypeShort)
	case mediaType == "VIDEO":
		typ = classify(kindVideo, duration, caption, true, domain.PostTypeShort)
	case boolean(raw, "is_live") || product == "LIVE":
		typ = domain.PostTypeLive
	default:
		typ = classify(kindImage, nil, caption, true, a.DefaultType())
	}

	published, ok := timestamp(raw, "timestamp")
	username := str(raw, "username")

	return domain.NormalizedPost{
		ID:       id,
		Platform: domain.PlatformInstagram,
		URL:      str(raw, "permalink"),
		Type:     typ,
		Creator: domain.Creator{
			Handle:         username,
			ID:             firstNonEmpty(str(raw, "owner", "id"), username),
			DisplayName:    firstNonEmpty(str(raw, "owner", "name"), username),
			ProfilePicture: strPtr(str(raw, "owner", "profile_picture_url")),
		},
		Text:            caption,
		Tags:            mergeTags(caption, ExtractHashtags(caption)),
		Mentions:        ExtractMentions(caption),
		DurationSeconds: duration,
		Stats: domain.PostStats{
			Likes:    count(raw, "like_count"),
			Comments: count(raw, "comments_count"),
			Shares:   count(raw, "shares_count"),
			Views:    max(count(raw, "play_count"), count(raw, "view_count")),
		},
		TimePublished: formatTime(published, ok),
		Thumbnail:     strPtr(firstNonEmpty(str(raw, "thumbnail_url"), str(raw, "media_url"))),
		MediaURL:      strPtr(str(raw, "media_url")),
	}, nil
}
