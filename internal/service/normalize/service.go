package normalize

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
)

// Service maps raw platform payloads onto NormalizedPost through a registry
// of per-platform adapters.
type Service struct {
	log      *slog.Logger
	adapters map[domain.Platform]Adapter
}

// NewService creates a Service with the built-in platform adapters registered.
func NewService(log *slog.Logger) *Service {
	s := &Service{
		log:      log.With("service", "normalize"),
		adapters: make(map[domain.Platform]Adapter),
	}
	for _, a := range []Adapter{
		youtubeAdapter{},
		tiktokAdapter{},
		instagramAdapter{},
		twitterAdapter{},
		redditAdapter{},
		twitchAdapter{},
	} {
		s.Register(a)
	}
	return s
}

// Register adds or replaces the adapter for a.Platform(). Not safe for use
// concurrently with Normalize; register during construction.
func (s *Service) Register(a Adapter) {
	s.adapters[a.Platform()] = a
}

// Supports reports whether platform has a dedicated adapter.
func (s *Service) Supports(platform domain.Platform) bool {
	_, ok := s.adapters[platform]
	return ok
}

func (s *Service) adapter(platform domain.Platform) (Adapter, bool) {
	if a, ok := s.adapters[platform]; ok {
		return a, true
	}
	if platform == "" {
		platform = "unknown"
	}
	return genericAdapter{platform: platform}, false
}

// Normalize maps raw onto a NormalizedPost. It never fails: mapping errors,
// invalid output, and panics produce a fallback record.
func (s *Service) Normalize(raw domain.RawPost, platform domain.Platform) (post domain.NormalizedPost) {
	a, supported := s.adapter(platform)
	platform = a.Platform()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("normalize panic", slog.String("platform", platform.String()), slog.String("panic", fmt.Sprint(r)))
			post = s.fallback(raw, platform, "panic")
		}
	}()

	if !supported {
		metrics.NormalizeFallbacks.WithLabelValues(platform.String(), "unsupported").Inc()
	}

	post, err := a.Map(raw)
	if err != nil {
		s.log.Warn("normalize map failed", slog.String("platform", platform.String()), slog.String("error", err.Error()))
		return s.fallback(raw, platform, "map_error")
	}

	finalize(&post)
	if err := Validate(post); err != nil {
		s.log.Warn("normalized post invalid", slog.String("platform", platform.String()), slog.String("error", err.Error()))
		return s.fallback(raw, platform, "invalid")
	}
	return post
}

// NormalizeAll normalizes every raw post of one platform, preserving order.
func (s *Service) NormalizeAll(raws []domain.RawPost, platform domain.Platform) []domain.NormalizedPost {
	out := make([]domain.NormalizedPost, 0, len(raws))
	for _, raw := range raws {
		out = append(out, s.Normalize(raw, platform))
	}
	return out
}

// FormatForPlatform shapes content and hashtags for platform. maxLength <= 0
// selects the platform limit; the result never exceeds the effective limit.
func (s *Service) FormatForPlatform(content string, hashtags []string, platform domain.Platform, maxLength int) string {
	a, _ := s.adapter(platform)
	return a.Format(content, hashtags, maxLength)
}

// LimitsFor returns the formatting limits used for platform.
func (s *Service) LimitsFor(platform domain.Platform) FormatLimits {
	a, _ := s.adapter(platform)
	return a.Limits()
}

func (s *Service) fallback(raw domain.RawPost, platform domain.Platform, reason string) domain.NormalizedPost {
	metrics.NormalizeFallbacks.WithLabelValues(platform.String(), reason).Inc()
	post := fallbackPost(raw, platform)
	if err := Validate(post); err != nil {
		s.log.Error("fallback post invalid", slog.String("platform", platform.String()), slog.String("error", err.Error()))
	}
	return post
}
