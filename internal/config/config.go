package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Expander ExpanderConfig `yaml:"expander"`
	Scrapers ScrapersConfig `yaml:"scrapers"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
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
}

// AuthConfig holds authentication settings. The engine is single-user:
// one username and one bcrypt password hash, exchanged for a bearer token.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"stride"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
	Username       string        `yaml:"username"         env:"AUTH_USERNAME"         env-default:"owner"`
	PasswordHash   string        `yaml:"password_hash"    env:"AUTH_PASSWORD_HASH"    env-required:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ShadowConfig holds shadow verification settings.
type ShadowConfig struct {
	// WindowMinutes is the assumed length of the activity behind an
	// external submission.
	WindowMinutes int `yaml:"window_minutes" env:"SHADOW_WINDOW_MINUTES" env-default:"30"`
}

// Window returns the shadow window as a duration.
func (c ShadowConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

// ExpanderConfig holds recurring-expansion settings.
type ExpanderConfig struct {
	// MaxWindowDays caps the day span a single expansion request may cover.
	MaxWindowDays int `yaml:"max_window_days" env:"EXPANDER_MAX_WINDOW_DAYS" env-default:"366"`
}

// ScrapersConfig holds settings for the external submission pollers.
type ScrapersConfig struct {
	PollInterval       time.Duration `yaml:"poll_interval"       env:"SCRAPERS_POLL_INTERVAL"       env-default:"15m"`
	RequestTimeout     time.Duration `yaml:"request_timeout"     env:"SCRAPERS_REQUEST_TIMEOUT"     env-default:"30s"`
	LeetCodeUsername   string        `yaml:"leetcode_username"   env:"SCRAPERS_LEETCODE_USERNAME"`
	CodeforcesHandle   string        `yaml:"codeforces_handle"   env:"SCRAPERS_CODEFORCES_HANDLE"`
	SubmissionPageSize int           `yaml:"submission_page_size" env:"SCRAPERS_SUBMISSION_PAGE_SIZE" env-default:"20"`
	// TZOffsetMinutes is the owner's timezone offset east of UTC, used to
	// attribute polled submissions to a local day.
	TZOffsetMinutes int `yaml:"tz_offset_minutes" env:"SCRAPERS_TZ_OFFSET_MINUTES" env-default:"0"`
}

// LeetCodeEnabled reports whether the LeetCode poller is configured.
func (c ScrapersConfig) LeetCodeEnabled() bool { return c.LeetCodeUsername != "" }

// CodeforcesEnabled reports whether the Codeforces poller is configured.
func (c ScrapersConfig) CodeforcesEnabled() bool { return c.CodeforcesHandle != "" }
