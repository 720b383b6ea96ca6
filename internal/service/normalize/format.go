package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ellipsis = "…"
	// wordBoundaryRatio is the share of the limit below which a word-boundary cut is rejected.
	wordBoundaryRatio = 0.8
)

// formatCaption shapes content for a platform. The result never exceeds the
// effective limit: min(maxLength, limits.MaxLength), or the platform limit when maxLength <= 0.
func formatCaption(content string, hashtags []string, limits FormatLimits, maxLength int) string {
	limit := limits.MaxLength
	if maxLength > 0 && maxLength < limit {
		limit = maxLength
	}
	if limit <= 0 {
		return ""
	}

	body := strings.TrimSpace(content)
	if limits.LineBreaks && !strings.Contains(body, "\n") && utf8.RuneCountInString(body) > limits.ParagraphRunes {
		body = injectLineBreaks(body, limits.ParagraphRunes)
	}

	sep := " "
	if limits.LineBreaks {
		sep = "\n\n"
	}

	tags := suffixTags(body, hashtags, limits.MaxHashtags)
	for len(tags) > 0 {
		out := joinCaption(body, sep, tags)
		if utf8.RuneCountInString(out) <= limit {
			return out
		}
		tags = tags[:len(tags)-1]
	}

	return truncate(body, limit)
}

// suffixTags returns up to limit hashtags not already present in body.
func suffixTags(body string, hashtags []string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	present := make(map[string]struct{})
	for _, t := range ExtractHashtags(body) {
		present[t] = struct{}{}
	}

	var out []string
	for _, t := range hashtags {
		before := len(out)
		out = appendUnique(out, present, t)
		if len(out) > before {
			out[len(out)-1] = "#" + out[len(out)-1]
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func joinCaption(body, sep string, tags []string) string {
	suffix := strings.Join(tags, " ")
	if body == "" {
		return suffix
	}
	return body + sep + suffix
}

// truncate cuts s to at most limit runes, ending with an ellipsis. The cut
// moves back to the last space when that keeps at least 80% of the limit.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 1 {
		return string(r[:limit])
	}

	cut := limit - 1
	head := r[:cut]
	if !unicode.IsSpace(r[cut]) {
		if i := lastSpace(head); i >= 0 && float64(i) >= wordBoundaryRatio*float64(limit) {
			head = head[:i]
		}
	}
	return strings.TrimRightFunc(string(head), unicode.IsSpace) + ellipsis
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}

// injectLineBreaks groups sentences into paragraphs of roughly size runes.
func injectLineBreaks(s string, size int) string {
	sentences := splitSentences(s)
	if len(sentences) < 2 {
		return s
	}

	var (
		paragraphs []string
		cur        strings.Builder
	)
	for _, sentence := range sentences {
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String()) >= size {
			paragraphs = append(paragraphs, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(sentence)
	}
	if cur.Len() > 0 {
		paragraphs = append(paragraphs, cur.String())
	}
	return strings.Join(paragraphs, "\n\n")
}

func splitSentences(s string) []string {
	var (
		out   []string
		start int
	)
	r := []rune(s)
	for i, c := range r {
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(r) && !unicode.IsSpace(r[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(string(r[start : i+1])); sentence != "" {
			out = append(out, sentence)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(r[start:])); tail != "" {
		out = append(out, tail)
	}
	return out
}
