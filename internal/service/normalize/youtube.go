package normalize

import (
	"errors"
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// youtubeAdapter maps YouTube Data API video resources.
type youtubeAdapter struct{}

func (youtubeAdapter) Platform() domain.Platform    { return domain.PlatformYouTube }
func (youtubeAdapter) DefaultType() domain.PostType { return domain.PostTypeLongform }
func (youtubeAdapter) Limits() FormatLimits         { return FormatLimits{MaxLength: 5000, MaxHashtags: 15} }

func (a youtubeAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

func (a youtubeAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	id := str(raw, "id", "videoId")
	if id == "" {
		id = str(raw, "id")
	}
	if id == "" {
		return domain.NormalizedPost{}, errors.New("youtube: missing video id")
	}

	title := str(raw, "snippet", "title")
	description := str(raw, "snippet", "description")
	duration := ParseISODuration(str(raw, "contentDetails", "duration"))

	kind := kindVideo
	if live := str(raw, "snippet", "liveBroadcastContent"); live == "live" || live == "upcoming" {
		kind = kindLive
	}
	typ := classify(kind, duration, "", false, a.DefaultType())

	url := "https://www.youtube.com/watch?v=" + id
	if typ == domain.PostTypeShort {
		url = "https://www.youtube.com/shorts/" + id
	}

	published, ok := timestamp(raw, "snippet", "publishedAt")

	text := strings.TrimSpace(title + "\n\n" + description)

	return domain.NormalizedPost{
		ID:       id,
		Platform: domain.PlatformYouTube,
		URL:      url,
		Type:     typ,
		Creator: domain.Creator{
			Handle:      firstNonEmpty(str(raw, "snippet", "channelHandle"), str(raw, "snippet", "channelId")),
			ID:          str(raw, "snippet", "channelId"),
			DisplayName: str(raw, "snippet", "channelTitle"),
		},
		Text:            text,
		Tags:            mergeTags(title+" "+description, strList(raw, "snippet", "tags"), ExtractHashtags(description)),
		Mentions:        ExtractMentions(description),
		DurationSeconds: duration,
		Stats: domain.PostStats{
			Likes:    count(raw, "statistics", "likeCount"),
			Comments: count(raw, "statistics", "commentCount"),
			Views:    count(raw, "statistics", "viewCount"),
		},
		TimePublished: formatTime(published, ok),
		Thumbnail: strPtr(firstNonEmpty(
			str(raw, "snippet", "thumbnails", "high", "url"),
			str(raw, "snippet", "thumbnails", "medium", "url"),
			str(raw, "snippet", "thumbnails", "default", "url"),
		)),
		MediaURL: strPtr(url),
	}, nil
}
