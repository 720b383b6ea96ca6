package ranking

import (
	"strings"
	"time"
	"unicode"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

const (
	freshWindow        = 6 * time.Hour
	maxExplainTopN     = 10
	genericExplanation = "Recommended from recent activity across your platforms"
)

type explainInput struct {
	summary *domain.BehaviorSummary
	tags    tagSet
	intent  []string
	mode    domain.SessionMode
	now     time.Time
}

// reasons returns the reason codes that apply to p, in a fixed order.
func reasons(p domain.NormalizedPost, in explainInput) ([]domain.ReasonCode, []string) {
	var (
		codes   []domain.ReasonCode
		matched = in.tags.matchingTags(p)
	)

	if len(matched) > 0 {
		codes = append(codes, domain.ReasonTagMatch)
	}
	if creatorAffinity(p, in.summary) {
		codes = append(codes, domain.ReasonCreatorAffinity)
	}
	if in.summary.PrefersType(p.Type) {
		codes = append(codes, domain.ReasonPreferredFormat)
	}
	if p.Stats.Engagement() > engagementTierLow {
		codes = append(codes, domain.ReasonHighEngagement)
	}
	if published := p.PublishedAt(); !published.IsZero() && in.now.Sub(published) < freshWindow {
		codes = append(codes, domain.ReasonFresh)
	}
	if p.Type == domain.PostTypeShort && wantsShort(in.mode, in.summary) {
		codes = append(codes, domain.ReasonShortFormatFit)
	}
	if (p.Type == domain.PostTypeLongform || p.Type == domain.PostTypeThread) && wantsLong(in.mode, in.summary) {
		codes = append(codes, domain.ReasonDeepDiveFit)
	}
	if intentMatches(p, in.intent) {
		codes = append(codes, domain.ReasonIntentMatch)
	}
	return codes, matched
}

func phrase(code domain.ReasonCode, p domain.NormalizedPost, matched []string) string {
	switch code {
	case domain.ReasonTagMatch:
		if len(matched) > 2 {
			matched = matched[:2]
		}
		return "matches your interest in #" + strings.Join(matched, ", #")
	case domain.ReasonCreatorAffinity:
		return "from " + p.Creator.DisplayName + ", a creator you engage with often"
	case domain.ReasonPreferredFormat:
		return "a " + p.Type.String() + " post, a format you prefer"
	case domain.ReasonHighEngagement:
		return "popular with other viewers"
	case domain.ReasonFresh:
		return "posted recently"
	case domain.ReasonShortFormatFit:
		return "quick to consume for a fast-paced session"
	case domain.ReasonDeepDiveFit:
		return "in-depth content for a focused session"
	case domain.ReasonIntentMatch:
		return "relevant to what you asked for"
	}
	return ""
}

// explain builds one sentence per post from its reason codes.
func explain(p domain.NormalizedPost, in explainInput) string {
	codes, matched := reasons(p, in)
	if len(codes) == 0 {
		return genericExplanation
	}

	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		if ph := phrase(c, p, matched); ph != "" {
			parts = append(parts, ph)
		}
	}
	return capitalize(strings.Join(parts, "; "))
}

func (s *Service) explanations(posts []domain.NormalizedPost, in explainInput) map[string]string {
	n := min(len(posts), s.explainTopN())
	out := make(map[string]string, n)
	for _, p := range posts[:n] {
		out[p.ID] = explain(p, in)
	}
	return out
}

func (s *Service) explainTopN() int {
	n := s.cfg.ExplainTopN
	if n <= 0 {
		return DefaultConfig().ExplainTopN
	}
	return min(n, maxExplainTopN)
}

func intentTerms(intent string) []string {
	var out []string
	for _, w := range strings.Fields(domain.NormalizeText(intent)) {
		if len([]rune(w)) > 2 {
			out = append(out, w)
		}
	}
	return out
}

func intentMatches(p domain.NormalizedPost, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	text := strings.ToLower(p.Text)
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
		for _, tag := range p.Tags {
			if domain.NormalizeTag(tag) == term {
				return true
			}
		}
	}
	return false
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
