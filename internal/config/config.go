package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the API and the storefront.
type Config struct {
	App        AppConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Storefront StorefrontConfig
}

// AppConfig controls API server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"storefront-api"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"PORT" envDefault:"5000"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSAllowOrigins      string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"POSTGRES_DSN"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	MigrationsDir  string `env:"POSTGRES_MIGRATIONS_DIR" envDefault:"migrations"`
	ConnMaxIdleSec int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
	// StatementTimeoutMS bounds every query; zero leaves the server default.
	StatementTimeoutMS int `env:"POSTGRES_STATEMENT_TIMEOUT_MS" envDefault:"5000"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	// URL, when set, takes precedence over Addr, Password and DB.
	URL             string `env:"REDIS_URL"`
	Addr            string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password        string `env:"REDIS_PASSWORD"`
	DB              int    `env:"REDIS_DB" envDefault:"0"`
	PingTimeoutSecs int    `env:"REDIS_PING_TIMEOUT_SECONDS" envDefault:"2"`
}

// PingTimeout bounds the connectivity check made at startup.
func (r RedisConfig) PingTimeout() time.Duration {
	if r.PingTimeoutSecs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(r.PingTimeoutSecs) * time.Second
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string `env:"JWT_SECRET" envDefault:"dev-secret"`
	AccessTokenTTLMinutes int    `env:"AUTH_ACCESS_TOKEN_TTL_MINUTES" envDefault:"1440"`
	BcryptCost            int    `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

// StorefrontConfig configures the browser-facing storefront.
type StorefrontConfig struct {
	Host              string `env:"STOREFRONT_HOST" envDefault:"0.0.0.0"`
	Port              string `env:"STOREFRONT_PORT" envDefault:"3000"`
	APIBaseURL        string `env:"API_BASE_URL" envDefault:"http://127.0.0.1:5000"`
	APITimeoutSeconds int    `env:"API_TIMEOUT_SECONDS" envDefault:"10"`
	SessionStore      string `env:"STOREFRONT_SESSION_STORE" envDefault:"redis"`
	SessionTTLMinutes int    `env:"STOREFRONT_SESSION_TTL_MINUTES" envDefault:"1440"`
	SecureCookies     bool   `env:"STOREFRONT_SECURE_COOKIES" envDefault:"false"`
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Storefront.SessionStore != "redis" && cfg.Storefront.SessionStore != "memory" {
		return nil, fmt.Errorf("invalid STOREFRONT_SESSION_STORE %q", cfg.Storefront.SessionStore)
	}
	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued access tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// Addr returns the storefront bind address.
func (s StorefrontConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// APITimeout bounds every outbound API call made by the storefront.
func (s StorefrontConfig) APITimeout() time.Duration {
	if s.APITimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.APITimeoutSeconds) * time.Second
}

// SessionTTL is how long an idle browser session namespace is retained.
func (s StorefrontConfig) SessionTTL() time.Duration {
	if s.SessionTTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}
