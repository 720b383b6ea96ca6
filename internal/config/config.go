package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Summary   SummaryConfig   `yaml:"summary"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Oracle    OracleConfig    `yaml:"oracle"`
	Feed      FeedConfig      `yaml:"feed"`
	Platforms PlatformsConfig `yaml:"platforms"`
	Retention RetentionConfig `yaml:"retention"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// EventsPerMinute caps event ingestion per caller. Zero disables the limit.
	EventsPerMinute int `yaml:"events_per_minute" env:"SERVER_EVENTS_PER_MINUTE" env-default:"600"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id,X-Session-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"600"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// CacheConfig selects and tunes the summary/ranking cache backend.
type CacheConfig struct {
	Backend         string        `yaml:"backend"          env:"CACHE_BACKEND"          env-default:"memory"`
	BadgerDir       string        `yaml:"badger_dir"       env:"CACHE_BADGER_DIR"       env-default:"./data/cache"`
	InMemory        bool          `yaml:"in_memory"        env:"CACHE_IN_MEMORY"        env-default:"false"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"CACHE_CLEANUP_INTERVAL" env-default:"1m"`
}

// AuthConfig holds access-token and credential sealing settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"feedsense"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	CredentialsKey string        `yaml:"credentials_key"  env:"AUTH_CREDENTIALS_KEY"  env-required:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SummaryConfig holds behavior summarizer parameters.
type SummaryConfig struct {
	CacheTTL      time.Duration `yaml:"cache_ttl"       env:"SUMMARY_CACHE_TTL"       env-default:"15m"`
	SessionGap    time.Duration `yaml:"session_gap"     env:"SUMMARY_SESSION_GAP"     env-default:"30m"`
	FastDwell     time.Duration `yaml:"fast_dwell"      env:"SUMMARY_FAST_DWELL"      env-default:"3s"`
	SlowDwell     time.Duration `yaml:"slow_dwell"      env:"SUMMARY_SLOW_DWELL"      env-default:"10s"`
	DeepDiveDwell time.Duration `yaml:"deep_dive_dwell" env:"SUMMARY_DEEP_DIVE_DWELL" env-default:"15s"`
	FutureSkew    time.Duration `yaml:"future_skew"     env:"SUMMARY_FUTURE_SKEW"     env-default:"5m"`
}

// RankingConfig holds ranking funnel parameters.
type RankingConfig struct {
	CacheTTL            time.Duration `yaml:"cache_ttl"             env:"RANKING_CACHE_TTL"             env-default:"5m"`
	OracleTimeout       time.Duration `yaml:"oracle_timeout"        env:"RANKING_ORACLE_TIMEOUT"        env-default:"8s"`
	OracleMaxCandidates int           `yaml:"oracle_max_candidates" env:"RANKING_ORACLE_MAX_CANDIDATES" env-default:"50"`
	ExplainTopN         int           `yaml:"explain_top_n"         env:"RANKING_EXPLAIN_TOP_N"         env-default:"5"`
	RecencyHorizonHours float64       `yaml:"recency_horizon_hours" env:"RANKING_RECENCY_HORIZON_HOURS" env-default:"48"`
	BlocklistRaw        string        `yaml:"blocklist"             env:"RANKING_BLOCKLIST"`
	BoostTagsRaw        string        `yaml:"boost_tags"            env:"RANKING_BOOST_TAGS"`

	// Blocklist is parsed from BlocklistRaw during validation.
	Blocklist []string `yaml:"-" env:"-"`
	// BoostTags is parsed from BoostTagsRaw during validation.
	BoostTags []string `yaml:"-" env:"-"`
}

// OracleConfig selects the ranking oracle backend.
type OracleConfig struct {
	Backend         string        `yaml:"backend"          env:"ORACLE_BACKEND"          env-default:"none"`
	APIKey          string        `yaml:"api_key"          env:"ORACLE_API_KEY"`
	Model           string        `yaml:"model"            env:"ORACLE_MODEL"            env-default:"claude-haiku-4-5"`
	MaxTokens       int64         `yaml:"max_tokens"       env:"ORACLE_MAX_TOKENS"       env-default:"1024"`
	Endpoint        string        `yaml:"endpoint"         env:"ORACLE_ENDPOINT"`
	RatePerSecond   float64       `yaml:"rate_per_second"  env:"ORACLE_RATE_PER_SECOND"  env-default:"2"`
	BreakerFailures uint32        `yaml:"breaker_failures" env:"ORACLE_BREAKER_FAILURES" env-default:"5"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"  env:"ORACLE_BREAKER_TIMEOUT"  env-default:"30s"`
}

// FeedConfig holds feed orchestration settings.
type FeedConfig struct {
	FetchTimeout     time.Duration `yaml:"fetch_timeout"      env:"FEED_FETCH_TIMEOUT"      env-default:"5s"`
	PerPlatformLimit int           `yaml:"per_platform_limit" env:"FEED_PER_PLATFORM_LIMIT" env-default:"50"`
	DefaultLimit     int           `yaml:"default_limit"      env:"FEED_DEFAULT_LIMIT"      env-default:"20"`
	MaxLimit         int           `yaml:"max_limit"          env:"FEED_MAX_LIMIT"          env-default:"100"`
}

// PlatformsConfig holds base URLs of the platform feed gateways.
// An empty URL disables the platform.
type PlatformsConfig struct {
	YouTubeBaseURL   string  `yaml:"youtube_base_url"   env:"PLATFORM_YOUTUBE_BASE_URL"`
	TikTokBaseURL    string  `yaml:"tiktok_base_url"    env:"PLATFORM_TIKTOK_BASE_URL"`
	InstagramBaseURL string  `yaml:"instagram_base_url" env:"PLATFORM_INSTAGRAM_BASE_URL"`
	TwitterBaseURL   string  `yaml:"twitter_base_url"   env:"PLATFORM_TWITTER_BASE_URL"`
	RedditBaseURL    string  `yaml:"reddit_base_url"    env:"PLATFORM_REDDIT_BASE_URL"`
	TwitchBaseURL    string  `yaml:"twitch_base_url"    env:"PLATFORM_TWITCH_BASE_URL"`
	RatePerSecond    float64 `yaml:"rate_per_second"    env:"PLATFORM_RATE_PER_SECOND"  env-default:"5"`
}

// BaseURLs returns the configured base URL per platform name, skipping empty ones.
func (p PlatformsConfig) BaseURLs() map[string]string {
	all := map[string]string{
		"youtube":   p.YouTubeBaseURL,
		"tiktok":    p.TikTokBaseURL,
		"instagram": p.InstagramBaseURL,
		"twitter":   p.TwitterBaseURL,
		"reddit":    p.RedditBaseURL,
		"twitch":    p.TwitchBaseURL,
	}
	out := make(map[string]string, len(all))
	for name, u := range all {
		if u != "" {
			out[name] = u
		}
	}
	return out
}

// RetentionConfig holds data-retention windows applied by cmd/cleanup.
type RetentionConfig struct {
	EventDays int `yaml:"event_days" env:"RETENTION_EVENT_DAYS" env-default:"90"`
	PostDays  int `yaml:"post_days"  env:"RETENTION_POST_DAYS"  env-default:"30"`
}
