package normalize

import (
	"errors"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// tiktokAdapter maps TikTok Display API video objects.
type tiktokAdapter struct{}

func (tiktokAdapter) Platform() domain.Platform    { return domain.PlatformTikTok }
func (tiktokAdapter) DefaultType() domain.PostType { return domain.PostTypeShort }
func (tiktokAdapter) Limits() FormatLimits {
	return FormatLimits{MaxLength: 2200, MaxHashtags: 10, LineBreaks: true, ParagraphRunes: 150}
}

func (a tiktokAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

func (a tiktokAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	id := str(raw, "id")
	if id == "" {
		return domain.NormalizedPost{}, errors.New("tiktok: missing video id")
	}

	description := firstStr(raw, "video_description", "description")
	title := str(raw, "title")
	duration := secondsPtr(num(raw, "duration"))
	published, ok := firstTime(raw, "create_time", "created_at")

	handle := firstNonEmpty(str(raw, "author", "unique_id"), str(raw, "username"))
	url := str(raw, "share_url")
	if url == "" && handle != "" {
		url = "https://www.tiktok.com/@" + handle + "/video/" + id
	}

	text := description
	if text == "" {
		text = title
	}

	return domain.NormalizedPost{
		ID:       id,
		Platform: domain.PlatformTikTok,
		URL:      url,
		Type:     classify(kindVideo, duration, text, true, a.DefaultType()),
		Creator: domain.Creator{
			Handle:         handle,
			ID:             firstNonEmpty(str(raw, "author", "id"), str(raw, "open_id"), handle),
			DisplayName:    firstNonEmpty(str(raw, "author", "nickname"), str(raw, "display_name"), handle),
			ProfilePicture: strPtr(str(raw, "author", "avatar_url")),
		},
		Text:            text,
		Tags:            mergeTags(title+" "+description, strList(raw, "hashtags"), ExtractHashtags(description)),
		Mentions:        ExtractMentions(description),
		DurationSeconds: duration,
		Stats: domain.PostStats{
			Likes:    count(raw, "like_count"),
			Comments: count(raw, "comment_count"),
			Shares:   count(raw, "share_count"),
			Views:    count(raw, "view_count"),
		},
		TimePublished: formatTime(published, ok),
		Thumbnail:     strPtr(str(raw, "cover_image_url")),
		MediaURL:      strPtr(firstNonEmpty(str(raw, "embed_link"), url)),
	}, nil
}
