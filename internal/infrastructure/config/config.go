package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// Storage backends selectable with STORAGE.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port        string `env:"PORT,         default=5001"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	Storage     string `env:"STORAGE,      default=mongo"`
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`
	SeedFile    string `env:"SEED_FILE,    default=seed/pre_registrations.yaml"`

	Auth     AuthConfig
	Sessions SessionConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,       default=168h"`
	RateLimit float64       `env:"AUTH_RATE_LIMIT, default=5"`
}

type SessionConfig struct {
	TimeZone      string        `env:"SESSION_TIMEZONE,          default=UTC"`
	Duration      time.Duration `env:"SESSION_DURATION,          default=2h"`
	EligibleYears []string      `env:"SUBMISSION_ELIGIBLE_YEARS, default=E-3,E-4"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGODB_DB,  default=campus_connect"`
}

type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM"`
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if _, err := time.LoadLocation(c.Sessions.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TIMEZONE: %w", err))
	}
	if c.Sessions.Duration <= 0 {
		errs = append(errs, errors.New("SESSION_DURATION must be positive"))
	}
	for _, y := range c.Sessions.EligibleYears {
		if !domain.ValidYearOfStudy(strings.TrimSpace(y)) {
			errs = append(errs, fmt.Errorf("SUBMISSION_ELIGIBLE_YEARS: unknown year %q", y))
		}
	}
	if c.Storage != StorageMongo && c.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q", StorageMongo, StorageMemory))
	}
	return errors.Join(errs...)
}

// Location returns the zone session schedules are interpreted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Sessions.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EligibleYears returns the trimmed SUBMISSION_ELIGIBLE_YEARS list.
func (c *Config) EligibleYears() []string {
	out := make([]string, 0, len(c.Sessions.EligibleYears))
	for _, y := range c.Sessions.EligibleYears {
		if y = strings.TrimSpace(y); y != "" {
			out = append(out, y)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
