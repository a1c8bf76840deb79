package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      LogConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Seed     SeedConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// JWTConfig holds the token verification secret
type JWTConfig struct {
	Secret string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// RedisConfig configures the optional country directory cache.
// An empty URL disables caching.
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// CORSConfig lists the frontends allowed to call the API
type CORSConfig struct {
	AllowOrigins []string
}

// SeedConfig controls reference data seeding on startup
type SeedConfig struct {
	Enabled bool
}

const devJWTSecret = "default_super_secret_key"

// Load reads configs/.env (if present) and then the environment.
// Environment variables win over .env values, which win over defaults.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{"configs/.env"}
	}
	// godotenv never overrides variables that are already set
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("db.host"),
			Port:            v.GetString("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			SSLMode:         v.GetString("db.sslmode"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			SlowThreshold:   v.GetDuration("db.slow_threshold"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(v.GetString("cors.allow_origins")),
		},
		Seed: SeedConfig{
			Enabled: v.GetBool("seed.enabled"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "statutory-engine")
	v.SetDefault("app.env", "development")
	v.SetDefault("port", "8080")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db.slow_threshold", 200*time.Millisecond)

	v.SetDefault("jwt.secret", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.cache_ttl", 10*time.Minute)

	v.SetDefault("cors.allow_origins", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("seed.enabled", true)
}

// Validate checks settings that must hold before the server starts
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET environment variable is required in production mode")
		}
		c.JWT.Secret = devJWTSecret // development fallback only
	}
	if c.App.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.Redis.URL != "" && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("REDIS_CACHE_TTL must be positive when REDIS_URL is set")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN builds the Postgres connection string
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
