package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	Env         string
	DatabaseURL string

	SecretKey    string
	SessionTTL   time.Duration
	CookieSecure bool

	AdminUsername string
	AdminPassword string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	StorageDriver string
	PublicDir     string
	S3Bucket      string
	S3Endpoint    string

	CORSAllowOrigins string
	MaxUploadMB      int
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Production reports whether APP_ENV selects production behavior.
func (c Config) Production() bool {
	return c.Env == "production"
}

// BodyLimit is the request size limit in bytes.
func (c Config) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from environment variables, after loading a .env
// file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:               env("APP_ADDR", ":8080"),
		Env:                env("APP_ENV", "development"),
		DatabaseURL:        env("DATABASE_URL", ""),
		SecretKey:          env("SECRET_KEY", ""),
		AdminUsername:      env("ADMIN_USERNAME", "admin_master"),
		AdminPassword:      env("ADMIN_PASSWORD", "admin_p@ssw0rd"),
		GoogleClientID:     env("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: env("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  env("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		StorageDriver:      strings.ToLower(env("STORAGE_DRIVER", StorageLocal)),
		PublicDir:          env("PUBLIC_DIR", "./static"),
		S3Bucket:           env("S3_BUCKET", ""),
		S3Endpoint:         env("S3_ENDPOINT", ""),
		CORSAllowOrigins:   env("CORS_ALLOW_ORIGINS", "*"),
	}

	ttl, err := time.ParseDuration(env("SESSION_TTL", "72h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	secure, err := strconv.ParseBool(env("COOKIE_SECURE", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	maxMB, err := strconv.Atoi(env("MAX_UPLOAD_MB", "100"))
	if err != nil || maxMB <= 0 {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD_MB %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadMB = maxMB

	if cfg.SecretKey == "" {
		if cfg.Production() {
			return Config{}, fmt.Errorf("SECRET_KEY is required in production")
		}
		cfg.SecretKey = "dev-secret-change-me"
	}

	switch cfg.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if cfg.S3Bucket == "" {
			return Config{}, fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}
