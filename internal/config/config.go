package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingDatabaseURL is returned by Load when neither connection string
// variable is set. The server cannot start without it.
var ErrMissingDatabaseURL = errors.New("missing NEON_CONNECTION_STRING or DATABASE_URL")

// DefaultCORSOrigins are the front-end origins allowed when CORS_ORIGINS is unset.
var DefaultCORSOrigins = []string{
	"http://127.0.0.1:5500",
	"http://localhost:5500",
	"https://crossroadsapparel.netlify.app",
}

// Config holds all service configuration loaded from environment variables.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	Port        string
	DatabaseURL string
	CORSOrigins []string

	SendGridAPIKey string
	FromEmail      string
	FromName       string
	EmailTimeout   time.Duration

	BcryptCost     int
	RequestTimeout time.Duration

	RedisAddr       string
	RedisPassword   string
	LoginRateLimit  int
	LoginRateWindow time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	MongoURI string
	MongoDB  string

	LogLevel  string
	LogFormat string
}

// Load reads a .env file if present, then builds a Config from the process
// environment. A missing connection string is an error; everything else
// falls back to a default or disables the feature that needs it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	p := parser{}
	c := &Config{
		Port:        getenv("PORT", "3000"),
		DatabaseURL: getenv("NEON_CONNECTION_STRING", os.Getenv("DATABASE_URL")),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", strings.Join(DefaultCORSOrigins, ","))),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		FromEmail:      os.Getenv("FROM_EMAIL"),
		FromName:       getenv("FROM_NAME", "Crossroads"),
		EmailTimeout:   p.duration("EMAIL_TIMEOUT", 10*time.Second),

		BcryptCost:     p.integer("BCRYPT_COST", bcrypt.DefaultCost),
		RequestTimeout: p.duration("REQUEST_TIMEOUT", 30*time.Second),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		LoginRateLimit:  p.integer("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: p.duration("LOGIN_RATE_WINDOW", time.Minute),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET", "profile-pictures"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getenv("MONGO_DB", "crossroads"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}

	if c.DatabaseURL == "" {
		p.errs = append(p.errs, ErrMissingDatabaseURL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		p.errs = append(p.errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if err := errors.Join(p.errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// EmailEnabled reports whether welcome emails can be sent.
func (c *Config) EmailEnabled() bool {
	return c.SendGridAPIKey != "" && c.FromEmail != ""
}

// RateLimitEnabled reports whether login throttling is backed by Redis.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddr != "" && c.LoginRateLimit > 0
}

// PicturesEnabled reports whether profile picture storage is configured.
func (c *Config) PicturesEnabled() bool {
	return c.MinioEndpoint != ""
}

// DeliveryLogEnabled reports whether notification attempts are recorded in MongoDB.
func (c *Config) DeliveryLogEnabled() bool {
	return c.MongoURI != ""
}

// Warnings lists optional settings that are missing and the feature each
// one disables.
func (c *Config) Warnings() []string {
	var w []string
	if c.SendGridAPIKey == "" {
		w = append(w, "SENDGRID_API_KEY not set: welcome emails will not be sent")
	}
	if c.FromEmail == "" {
		w = append(w, "FROM_EMAIL not set: welcome emails will not be sent")
	}
	if !c.RateLimitEnabled() {
		w = append(w, "REDIS_ADDR not set: login attempts are not rate limited")
	}
	if !c.PicturesEnabled() {
		w = append(w, "MINIO_ENDPOINT not set: profile picture uploads are disabled")
	}
	return w
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser collects conversion errors so Load can report all of them at once.
type parser struct {
	errs []error
}

func (p *parser) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
