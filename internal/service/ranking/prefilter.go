package ranking

import (
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// DefaultBlocklist is used when neither feed rules nor configuration supply one.
var DefaultBlocklist = []string{"nsfw", "gore", "scam", "graphic violence", "self-harm"}

// prefilter drops posts whose text or tags contain a blocklisted term
// (case-insensitive substring match). Order is preserved.
func prefilter(posts []domain.NormalizedPost, blocklist []string) []domain.NormalizedPost {
	terms := make([]string, 0, len(blocklist))
	for _, b := range blocklist {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			terms = append(terms, b)
		}
	}

	out := make([]domain.NormalizedPost, 0, len(posts))
	for _, p := range posts {
		if !blocked(p, terms) {
			out = append(out, p)
		}
	}
	return out
}

func blocked(p domain.NormalizedPost, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	text := strings.ToLower(p.Text)
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
	}
	return false
}

func (s *Service) blocklist(rules domain.FeedRules) []string {
	switch {
	case len(rules.Blocklist) > 0:
		return rules.Blocklist
	case len(s.cfg.Blocklist) > 0:
		return s.cfg.Blocklist
	default:
		return DefaultBlocklist
	}
}
