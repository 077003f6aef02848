package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Admin    AdminConfig
	SMTP     SMTPConfig
	Report   ReportConfig
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"timeclock"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `envconfig:"JWT_SECRET_KEY"`
	AccessExpiration time.Duration `envconfig:"JWT_ACCESS_EXPIRATION_TIME" default:"12h"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int      `envconfig:"APP_PORT" default:"8080"`
	Env                string   `envconfig:"APP_ENV" default:"development"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`
	// TZOffsetHours anchors every calendar date to UTC+offset.
	TZOffsetHours int `envconfig:"TZ_OFFSET_HOURS" default:"3"`
}

// AdminConfig is the single administrator account.
type AdminConfig struct {
	Username     string `envconfig:"ADMIN_USER" default:"admin"`
	Password     string `envconfig:"ADMIN_PASS"`
	PasswordHash string `envconfig:"ADMIN_PASS_HASH"`
	Email        string `envconfig:"ADMIN_EMAIL"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASS"`
	From     string `envconfig:"SMTP_FROM"`
	FromName string `envconfig:"SMTP_FROM_NAME" default:"Time Clock"`
}

// ReportConfig controls the scheduled daily report.
type ReportConfig struct {
	Enabled   bool   `envconfig:"REPORT_SCHEDULE_ENABLED" default:"true"`
	Schedule  string `envconfig:"REPORT_SCHEDULE" default:"0 0 * * *"`
	Recipient string `envconfig:"REPORT_RECIPIENT"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	sections := []interface{}{
		&config.Database,
		&config.JWT,
		&config.App,
		&config.Admin,
		&config.SMTP,
		&config.Report,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if config.Report.Recipient == "" {
		config.Report.Recipient = config.Admin.Email
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASS or ADMIN_PASS_HASH is required")
	}
	if c.App.TZOffsetHours < -12 || c.App.TZOffsetHours > 14 {
		return fmt.Errorf("TZ_OFFSET_HOURS must be between -12 and 14")
	}
	if c.App.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) IsProduction() bool {
	return c.App.IsProduction()
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}
