package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	cacheBackends  = []string{"memory", "badger"}
	oracleBackends = []string{"none", "claude", "http"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if len(c.Auth.CredentialsKey) < 32 {
		return fmt.Errorf("auth.credentials_key must be at least 32 characters (got %d)", len(c.Auth.CredentialsKey))
	}

	if c.Server.EventsPerMinute < 0 {
		return fmt.Errorf("server.events_per_minute must be >= 0 (got %d)", c.Server.EventsPerMinute)
	}

	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend must be one of %v (got %q)", cacheBackends, c.Cache.Backend)
	}
	if c.Cache.Backend == "badger" && !c.Cache.InMemory && c.Cache.BadgerDir == "" {
		return fmt.Errorf("cache.badger_dir is required for the badger backend")
	}

	if err := c.Summary.validate(); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	if err := c.Ranking.validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	if err := c.Oracle.validate(); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Feed.validate(); err != nil {
		return fmt.Errorf("feed: %w", err)
	}

	if c.Retention.EventDays <= 0 || c.Retention.PostDays <= 0 {
		return fmt.Errorf("retention: event_days and post_days must be > 0")
	}

	return nil
}

func (s *SummaryConfig) validate() error {
	if s.SessionGap <= 0 {
		return fmt.Errorf("session_gap must be > 0 (got %v)", s.SessionGap)
	}
	if s.FastDwell <= 0 || s.SlowDwell <= s.FastDwell {
		return fmt.Errorf("fast_dwell must be > 0 and below slow_dwell (got %v / %v)", s.FastDwell, s.SlowDwell)
	}
	if s.DeepDiveDwell < s.SlowDwell {
		return fmt.Errorf("deep_dive_dwell must be >= slow_dwell (got %v)", s.DeepDiveDwell)
	}
	if s.FutureSkew < 0 {
		return fmt.Errorf("future_skew must be >= 0 (got %v)", s.FutureSkew)
	}
	return nil
}

func (r *RankingConfig) validate() error {
	if r.OracleMaxCandidates <= 0 {
		return fmt.Errorf("oracle_max_candidates must be > 0 (got %d)", r.OracleMaxCandidates)
	}
	if r.ExplainTopN < 1 || r.ExplainTopN > 10 {
		return fmt.Errorf("explain_top_n must be in [1,10] (got %d)", r.ExplainTopN)
	}
	if r.RecencyHorizonHours <= 0 {
		return fmt.Errorf("recency_horizon_hours must be > 0 (got %v)", r.RecencyHorizonHours)
	}
	if r.OracleTimeout <= 0 {
		return fmt.Errorf("oracle_timeout must be > 0 (got %v)", r.OracleTimeout)
	}
	r.Blocklist = ParseList(r.BlocklistRaw)
	r.BoostTags = ParseList(r.BoostTagsRaw)
	return nil
}

func (o *OracleConfig) validate() error {
	if !slices.Contains(oracleBackends, o.Backend) {
		return fmt.Errorf("backend must be one of %v (got %q)", oracleBackends, o.Backend)
	}
	switch o.Backend {
	case "claude":
		if o.APIKey == "" {
			return fmt.Errorf("api_key is required for the claude backend")
		}
	case "http":
		if o.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the http backend")
		}
	}
	if o.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second must be > 0 (got %v)", o.RatePerSecond)
	}
	return nil
}

func (f *FeedConfig) validate() error {
	if f.MaxLimit <= 0 || f.DefaultLimit <= 0 || f.DefaultLimit > f.MaxLimit {
		return fmt.Errorf("default_limit must be in [1,max_limit] (got %d, max %d)", f.DefaultLimit, f.MaxLimit)
	}
	if f.PerPlatformLimit <= 0 {
		return fmt.Errorf("per_platform_limit must be > 0 (got %d)", f.PerPlatformLimit)
	}
	return nil
}

// ParseList parses a comma-separated list, trimming and lowercasing items.
// Empty items are skipped; an empty string returns a nil slice.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
