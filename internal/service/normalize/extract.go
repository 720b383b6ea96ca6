package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	mentionRe = regexp.MustCompile(`@(\w+)`)
)

// MaxKeywordTags bounds keyword-derived tags.
const MaxKeywordTags = 10

var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "also": {}, "been": {}, "before": {},
	"being": {}, "could": {}, "does": {}, "doing": {}, "down": {}, "each": {},
	"from": {}, "have": {}, "having": {}, "here": {}, "into": {}, "just": {},
	"like": {}, "more": {}, "most": {}, "much": {}, "only": {}, "other": {},
	"over": {}, "same": {}, "some": {}, "such": {}, "than": {}, "that": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "through": {}, "very": {}, "want": {}, "were": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "while": {}, "will": {},
	"with": {}, "would": {}, "your": {}, "yours": {}, "http": {}, "https": {},
	"www": {}, "video": {}, "watch": {}, "subscribe": {},
}

// ExtractHashtags returns the hashtags of text, case-folded and deduplicated.
func ExtractHashtags(text string) []string {
	return matchAll(hashtagRe, text)
}

// ExtractMentions returns the @mentions of text, case-folded and deduplicated.
func ExtractMentions(text string) []string {
	return matchAll(mentionRe, text)
}

func matchAll(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = appendUnique(out, seen, m[1])
	}
	return out
}

// KeywordTags derives up to MaxKeywordTags unique lowercase words longer than
// three characters from text, skipping stop words.
func KeywordTags(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var out []string
	seen := make(map[string]struct{})
	for _, w := range words {
		if len([]rune(w)) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = appendUnique(out, seen, w)
		if len(out) == MaxKeywordTags {
			break
		}
	}
	return out
}

// mergeTags joins tag sources in order, case-folded and deduplicated. When no
// tag is found, keywords from fallbackText are used.
func mergeTags(fallbackText string, sources ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, src := range sources {
		for _, t := range src {
			out = appendUnique(out, seen, t)
		}
	}
	if len(out) == 0 {
		out = KeywordTags(fallbackText)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func appendUnique(out []string, seen map[string]struct{}, tag string) []string {
	tag = domain.NormalizeTag(tag)
	if tag == "" {
		return out
	}
	if _, dup := seen[tag]; dup {
		return out
	}
	seen[tag] = struct{}{}
	return append(out, tag)
}
