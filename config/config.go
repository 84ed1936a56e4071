package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EmailConfig holds everything needed to deliver notifications.
type EmailConfig struct {
	Provider      string // "smtp", "ses", or "noop"
	To            string
	From          string
	FromName      string
	SMTPServer    string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	SESRegion     string
	SESAccessKey  string
	SESSecretKey  string
}

// Config holds all configuration for the watcher.
type Config struct {
	Environment string
	APIBase     string
	APIToken    string
	UserAgent   string
	CacheFile   string
	DatabaseURL string
	DetailDelay time.Duration
	HTTPTimeout time.Duration
	Email       EmailConfig
}

// Load loads configuration from environment variables.
// It attempts to load from .env file if not in production.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables, so a missing
	// .env file is not an error there either.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		APIBase:     os.Getenv("HTB_API_BASE"),
		APIToken:    os.Getenv("HTB_API_TOKEN"),
		UserAgent:   os.Getenv("USER_AGENT"),
		CacheFile:   os.Getenv("CACHE_FILE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Email: EmailConfig{
			Provider:     os.Getenv("EMAIL_PROVIDER"),
			To:           os.Getenv("EMAIL_TO"),
			From:         os.Getenv("EMAIL_FROM"),
			FromName:     os.Getenv("EMAIL_FROM_NAME"),
			SMTPServer:   os.Getenv("SMTP_SERVER"),
			SMTPPort:     os.Getenv("SMTP_PORT"),
			SMTPUser:     os.Getenv("SMTP_USER"),
			SMTPPass:     os.Getenv("SMTP_PASS"),
			SESRegion:    os.Getenv("SES_REGION"),
			SESAccessKey: os.Getenv("SES_ACCESS_KEY_ID"),
			SESSecretKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
		},
	}

	// Set defaults
	if cfg.APIBase == "" {
		cfg.APIBase = "https://ctf.hackthebox.com/api/public/ctfs"
	}
	if cfg.CacheFile == "" {
		cfg.CacheFile = "ctf_cache.json"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "HTB-CTF-Watcher/EmailBot"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "smtp"
	}

	cfg.DetailDelay = secondsEnv("SLEEP_BETWEEN_DETAILS", 1.0)
	cfg.HTTPTimeout = secondsEnv("HTTP_TIMEOUT", 20.0)

	return cfg, nil
}

// ValidateEmail verifies the variables the selected provider needs are set.
// The original deployment treats these as strictly required at startup.
func (c *Config) ValidateEmail() error {
	var missing []string
	need := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	switch c.Email.Provider {
	case "smtp":
		need("SMTP_SERVER", c.Email.SMTPServer)
		need("SMTP_PORT", c.Email.SMTPPort)
		need("SMTP_USER", c.Email.SMTPUser)
		need("SMTP_PASS", c.Email.SMTPPass)
		need("EMAIL_TO", c.Email.To)
		need("EMAIL_FROM", c.Email.From)
	case "ses":
		need("SES_REGION", c.Email.SESRegion)
		need("SES_ACCESS_KEY_ID", c.Email.SESAccessKey)
		need("SES_SECRET_ACCESS_KEY", c.Email.SESSecretKey)
		need("EMAIL_TO", c.Email.To)
		need("EMAIL_FROM", c.Email.From)
	case "noop":
		// nothing required
	default:
		return fmt.Errorf("unknown email provider %q", c.Email.Provider)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func secondsEnv(name string, fallback float64) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return time.Duration(fallback * float64(time.Second))
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using default", name, raw)
		return time.Duration(fallback * float64(time.Second))
	}
	return time.Duration(v * float64(time.Second))
}
