package normalize

import "github.com/heartmarshall/feedsense-backend/internal/domain"

// Adapter maps one platform's raw payloads onto NormalizedPost and shapes
// outgoing text for it. Implementations hold no mutable state.
type Adapter interface {
	Platform() domain.Platform
	Map(raw domain.RawPost) (domain.NormalizedPost, error)
	Format(content string, hashtags []string, maxLength int) string
	Limits() FormatLimits
	// DefaultType is the post type used when a payload cannot be classified.
	DefaultType() domain.PostType
}

// FormatLimits are the platform constraints used by the shared formatter.
type FormatLimits struct {
	MaxLength   int
	MaxHashtags int
	// LineBreaks enables paragraph injection for long captions.
	LineBreaks bool
	// ParagraphRunes is the target paragraph size when LineBreaks is set.
	ParagraphRunes int
}

// ShortVideoMaxSeconds is the upper bound (exclusive) of a short video.
const ShortVideoMaxSeconds = 60

// ThreadMinRunes is the length above which plain text on short-form platforms is a thread.
const ThreadMinRunes = 240

type mediaKind int

const (
	kindUnknown mediaKind = iota
	kindVideo
	kindImage
	kindText
	kindLive
)

// classify applies the shared type heuristics; def is used when nothing applies.
func classify(kind mediaKind, durationSeconds *int, text string, shortForm bool, def domain.PostType) domain.PostType {
	switch kind {
	case kindLive:
		return domain.PostTypeLive
	case kindVideo:
		if durationSeconds == nil {
			return def
		}
		if *durationSeconds < ShortVideoMaxSeconds {
			return domain.PostTypeShort
		}
		return domain.PostTypeLongform
	case kindImage:
		return domain.PostTypeImage
	case kindText:
		if shortForm && len([]rune(text)) > ThreadMinRunes {
			return domain.PostTypeThread
		}
		return def
	}
	return def
}
