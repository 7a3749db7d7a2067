package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RemoteBaseURL     string
	RemoteTimeout     time.Duration
	SyncRemoteTimeout time.Duration
	SyncInterval      time.Duration
	SyncBatchSize     int

	SyncEnabled           bool
	DuplicateCheckEnabled bool
	AuditEnabled          bool
	AuditWriteTimeout     time.Duration

	LogLevel slog.Level
}

// LoadConfig reads .env.<APP_ENV> and .env when present, then the process
// environment. Variables already set in the environment win over the files.
func LoadConfig() (Config, error) {
	if env := os.Getenv("APP_ENV"); env != "" {
		_ = godotenv.Load(".env." + env)
	}
	_ = godotenv.Load(".env")

	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv, applying defaults and Validate.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}

	c := Config{
		HTTPPort:   r.string("HTTP_PORT", "8080"),
		DBHost:     r.string("DB_HOST", ""),
		DBPort:     r.string("DB_PORT", "5432"),
		DBUser:     r.string("DB_USER", ""),
		DBPassword: r.string("DB_PASSWORD", ""),
		DBName:     r.string("DB_NAME", ""),
		DBSslMode:  r.string("DB_SSLMODE", "disable"),

		RemoteBaseURL:     r.string("REMOTE_BASE_URL", ""),
		RemoteTimeout:     r.duration("REMOTE_TIMEOUT", 15*time.Second),
		SyncRemoteTimeout: r.duration("SYNC_REMOTE_TIMEOUT", 30*time.Second),
		SyncInterval:      r.duration("SYNC_INTERVAL", 60*time.Second),
		SyncBatchSize:     r.int("SYNC_BATCH_SIZE", 500),

		SyncEnabled:           r.bool("SYNC_ENABLED", true),
		DuplicateCheckEnabled: r.bool("DUPLICATE_CHECK_ENABLED", true),
		AuditEnabled:          r.bool("AUDIT_ENABLED", true),
		AuditWriteTimeout:     r.duration("AUDIT_WRITE_TIMEOUT", 3*time.Second),

		LogLevel: r.level("LOG_LEVEL", slog.LevelInfo),
	}

	if err := errors.Join(r.err, c.Validate()); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings the service cannot start without. Missing
// record store settings are not an error: store backed operations then
// answer a configuration error.
func (c Config) Validate() error {
	var checks []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		checks = append(checks, fmt.Errorf("HTTP_PORT %q is not a valid port", c.HTTPPort))
	}

	if c.RemoteBaseURL == "" {
		checks = append(checks, errors.New("REMOTE_BASE_URL is required"))
	} else if u, err := url.Parse(c.RemoteBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		checks = append(checks, fmt.Errorf("REMOTE_BASE_URL %q is not an absolute URL", c.RemoteBaseURL))
	}

	for name, d := range map[string]time.Duration{
		"REMOTE_TIMEOUT":      c.RemoteTimeout,
		"SYNC_REMOTE_TIMEOUT": c.SyncRemoteTimeout,
		"SYNC_INTERVAL":       c.SyncInterval,
		"AUDIT_WRITE_TIMEOUT": c.AuditWriteTimeout,
	} {
		if d <= 0 {
			checks = append(checks, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	if c.SyncBatchSize <= 0 {
		checks = append(checks, fmt.Errorf("SYNC_BATCH_SIZE must be positive, got %d", c.SyncBatchSize))
	}

	return errors.Join(checks...)
}

// DBConfigured reports whether the record store connection settings are present.
func (c Config) DBConfigured() bool {
	return c.DBHost != "" && c.DBUser != "" && c.DBName != ""
}

// DSN is the keyword/value connection string understood by pgx and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

type envReader struct {
	getenv func(string) string
	err    error
}

func (r *envReader) string(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

// duration accepts Go durations ("90s") and plain seconds ("90").
func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (r *envReader) int(key string, def int) int {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *envReader) bool(key string, def bool) bool {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func (r *envReader) level(key string, def slog.Level) slog.Level {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return level
}
