package normalize

import "github.com/heartmarshall/feedsense-backend/internal/domain"

// genericAdapter maps payloads of platforms without a dedicated adapter.
type genericAdapter struct {
	platform domain.Platform
}

func (a genericAdapter) Platform() domain.Platform  { return a.platform }
func (genericAdapter) DefaultType() domain.PostType { return domain.PostTypeShort }
func (genericAdapter) Limits() FormatLimits         { return FormatLimits{MaxLength: 2200, MaxHashtags: 10} }

func (a genericAdapter) Format(content string, hashtags []string, maxLength int) string {
	return formatCaption(content, hashtags, a.Limits(), maxLength)
}

// Map never fails. The creator is taken from common author fields when present.
func (a genericAdapter) Map(raw domain.RawPost) (domain.NormalizedPost, error) {
	post := fallbackPost(raw, a.platform)

	handle := firstNonEmpty(str(raw, "author", "username"), str(raw, "username"), str(raw, "author"), str(raw, "creator", "handle"))
	if handle != "" {
		post.Creator = domain.Creator{
			Handle:      handle,
			ID:          firstNonEmpty(str(raw, "author", "id"), str(raw, "author_id"), str(raw, "creator", "id"), handle),
			DisplayName: firstNonEmpty(str(raw, "author", "name"), str(raw, "creator", "displayName"), handle),
		}
	}
	return post, nil
}
