package normalize

import (
	"errors"
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// twitchAdapter maps Helix stream and video objects.
type twitchAdapter struct{}

func (twitchAdapter) Platform() domain.Platform    { return domain.PlatformTwitch }
func (twitchAdapter) DefaultType() domain.PostType { return domain.PostTypeLongform }
func (twitchAdapter) Limits() FormatLimits         { return FormatLimits{MaxLength: 140, MaxHashtags: 10} }

func (a twitchAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

func (a twitchAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	id := str(raw, "id")
	if id == "" {
		return domain.NormalizedPost{}, errors.New("twitch: missing id")
	}

	login := str(raw, "user_login")
	title := str(raw, "title")
	description := str(raw, "description")

	isStream := str(raw, "type") == "live" || str(raw, "started_at") != ""
	kind := kindVideo
	duration := parseClockDuration(str(raw, "duration"))
	url := str(raw, "url")
	if isStream {
		kind = kindLive
		if url == "" && login != "" {
			url = "https://www.twitch.tv/" + login
		}
	}

	published, ok := firstTime(raw, "started_at", "published_at", "created_at")

	thumb := str(raw, "thumbnail_url")
	thumb = strings.NewReplacer("{width}", "640", "{height}", "360", "%{width}", "640", "%{height}", "360").Replace(thumb)

	views := count(raw, "view_count")
	if isStream {
		views = count(raw, "viewer_count")
	}

	return domain.NormalizedPost{
		ID:       id,
		Platform: domain.PlatformTwitch,
		URL:      url,
		Type:     classify(kind, duration, title, false, a.DefaultType()),
		Creator: domain.Creator{
			Handle:      login,
			ID:          firstNonEmpty(str(raw, "user_id"), login),
			DisplayName: firstNonEmpty(str(raw, "user_name"), login),
		},
		Text:            strings.TrimSpace(title + "\n\n" + description),
		Tags:            mergeTags(title+" "+description, strList(raw, "tags"), ExtractHashtags(title)),
		Mentions:        ExtractMentions(title + " " + description),
		DurationSeconds: duration,
		Stats:           domain.PostStats{Views: views},
		TimePublished:   formatTime(published, ok),
		Thumbnail:       strPtr(thumb),
		MediaURL:        strPtr(url),
	}, nil
}
