package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	LiveKit   LiveKitConfig   `yaml:"livekit"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
	TraceQueries    bool          `yaml:"trace_queries"      env:"DATABASE_TRACE_QUERIES"      env-default:"false"`
}

// RedisConfig holds the Redis connection used for room registry and matchmaking.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
}

// AuthConfig holds settings for validating caller access tokens.
type AuthConfig struct {
	JWTSecret              string        `yaml:"jwt_secret"                env:"AUTH_JWT_SECRET"                env-required:"true"`
	JWTIssuer              string        `yaml:"jwt_issuer"                env:"AUTH_JWT_ISSUER"                env-default:"mindcure"`
	AccessTokenTTL         time.Duration `yaml:"access_token_ttl"          env:"AUTH_ACCESS_TOKEN_TTL"          env-default:"1h"`
	APIKeyEncryptionSecret string        `yaml:"api_key_encryption_secret" env:"AUTH_API_KEY_ENCRYPTION_SECRET" env-required:"true"`
}

// LiveKitConfig holds the media server endpoint and the grant signing key pair.
// Empty credentials are allowed at startup; grant issuance then fails with
// a missing-credential error.
type LiveKitConfig struct {
	URL          string        `yaml:"url"           env:"LIVEKIT_URL"`
	APIKey       string        `yaml:"api_key"       env:"LIVEKIT_API_KEY"`
	APISecret    string        `yaml:"api_secret"    env:"LIVEKIT_API_SECRET"`
	CompanionTTL time.Duration `yaml:"companion_ttl" env:"LIVEKIT_COMPANION_TTL" env-default:"15m"`
	PeerTTL      time.Duration `yaml:"peer_ttl"      env:"LIVEKIT_PEER_TTL"      env-default:"1h"`
}

// AnalysisConfig holds the text-generation provider settings.
type AnalysisConfig struct {
	Provider   string        `yaml:"provider"     env:"ANALYSIS_PROVIDER"     env-default:"gemini"`
	Model      string        `yaml:"model"        env:"ANALYSIS_MODEL"`
	APIKey     string        `yaml:"api_key"      env:"ANALYSIS_API_KEY"`
	MaxTokens  int64         `yaml:"max_tokens"   env:"ANALYSIS_MAX_TOKENS"   env-default:"2048"`
	Timeout    time.Duration `yaml:"timeout"      env:"ANALYSIS_TIMEOUT"      env-default:"45s"`
	RatePerMin int           `yaml:"rate_per_min" env:"ANALYSIS_RATE_PER_MIN" env-default:"20"`
}

// SessionConfig holds conversation lifecycle settings.
type SessionConfig struct {
	FinalizeTimeout time.Duration `yaml:"finalize_timeout"  env:"SESSION_FINALIZE_TIMEOUT"  env-default:"60s"`
	StaleAfter      time.Duration `yaml:"stale_after"       env:"SESSION_STALE_AFTER"       env-default:"6h"`
	MaxMessageBytes int64         `yaml:"max_message_bytes" env:"SESSION_MAX_MESSAGE_BYTES" env-default:"65536"`
	PeerQueueTTL    time.Duration `yaml:"peer_queue_ttl"    env:"SESSION_PEER_QUEUE_TTL"    env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds the per-caller limiter settings.
type RateLimitConfig struct {
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
	WritePerMin     int           `yaml:"write_per_min"    env:"RATE_LIMIT_WRITE_PER_MIN"    env-default:"120"`
}

// Provider names accepted by AnalysisConfig.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// DefaultModel returns the configured model or the provider's default.
func (c AnalysisConfig) DefaultModel() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderAnthropic {
		return "claude-sonnet-4-5"
	}
	return "gemini-2.5-flash-lite"
}

// HasGrantCredentials reports whether grants can be signed and addressed.
func (c LiveKitConfig) HasGrantCredentials() bool {
	return c.URL != "" && c.APIKey != "" && c.APISecret != ""
}
