package normalize

import (
	"errors"
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// redditAdapter maps the data object of a Reddit listing child (kind t3).
type redditAdapter struct{}

func (redditAdapter) Platform() domain.Platform    { return domain.PlatformReddit }
func (redditAdapter) DefaultType() domain.PostType { return domain.PostTypeThread }
func (redditAdapter) Limits() FormatLimits         { return FormatLimits{MaxLength: 40000, MaxHashtags: 0} }

func (a redditAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

func (a redditAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	if data := sub(raw, "data"); data != nil {
		raw = data
	}

	id := str(raw, "id")
	if id == "" {
		return domain.NormalizedPost{}, errors.New("reddit: missing post id")
	}

	title := str(raw, "title")
	body := str(raw, "selftext")
	text := strings.TrimSpace(title + "\n\n" + body)

	kind := kindText
	var (
		duration *int
		media    string
	)
	hint := str(raw, "post_hint")
	switch {
	case boolean(raw, "is_video") || hint == "hosted:video" || hint == "rich:video":
		kind = kindVideo
		duration = secondsPtr(num(raw, "media", "reddit_video", "duration"))
		media = str(raw, "media", "reddit_video", "fallback_url")
	case hint == "image":
		kind = kindImage
		media = str(raw, "url")
	}

	author := str(raw, "author")
	thumb := str(raw, "thumbnail")
	if !strings.HasPrefix(thumb, "http") {
		// "self", "default" and "nsfw" are placeholders, not URLs.
		thumb = ""
	}

	permalink := str(raw, "permalink")
	url := permalink
	if strings.HasPrefix(permalink, "/") {
		url = "https://www.reddit.com" + permalink
	}

	var flair []string
	if f := str(raw, "link_flair_text"); f != "" {
		flair = append(flair, f)
	}
	if s := str(raw, "subreddit"); s != "" {
		flair = append(flair, s)
	}

	published, ok := timestamp(raw, "created_utc")

	return domain.NormalizedPost{
		ID:       id,
		Platform: domain.PlatformReddit,
		URL:      url,
		Type:     classify(kind, duration, text, false, a.DefaultType()),
		Creator: domain.Creator{
			Handle:      author,
			ID:          firstNonEmpty(str(raw, "author_fullname"), author),
			DisplayName: author,
		},
		Text:            text,
		Tags:            mergeTags(title+" "+body, flair, ExtractHashtags(body)),
		Mentions:        ExtractMentions(body),
		DurationSeconds: duration,
		Stats: domain.PostStats{
			Likes:    max(count(raw, "ups"), count(raw, "score")),
			Comments: count(raw, "num_comments"),
			Shares:   count(raw, "num_crossposts"),
			Views:    count(raw, "view_count"),
		},
		TimePublished: formatTime(published, ok),
		Thumbnail:     strPtr(thumb),
		MediaURL:      strPtr(media),
	}, nil
}
