package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read from the environment. Rate limits are configured separately
// through the RATELIMIT_* variables read by httpx.
type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired challenge and pending user sweep (default: 1m)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite file (default: ./shop.db)
	DatabaseURL    string // PostgreSQL DSN; built from DB_* when empty

	ChallengeStore string // memory or redis (default: memory)
	RedisAddr      string
	RedisPassword  string

	SecondFactorTTL         time.Duration // Lifetime of a 2FA token (default: 300s)
	SecondFactorMaxAttempts int           // Wrong codes before a 2FA token is burned (default: 5)

	ConfirmationTTL         time.Duration // Lifetime of an email confirmation token (default: 24h)
	ConfirmationURL         string        // Page the confirmation link points at
	ExposeConfirmationToken bool          // Return the token in the response (dev only)

	PepperFile       string // Password pepper, generated on first use (default: ./pepper)
	AESSecretKey     string // Hex AES key for email encryption
	AESSecretKeyFile string // Alternative to AESSecretKey
	TOTPIssuer       string // Issuer shown in authenticator apps (default: ChocoMax)

	MailSender   string // log or smtp (default: log)
	MailServer   string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string
}

func LoadConfig() Config {
	cfg := Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Minute),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", "sqlite")),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "shop.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		ChallengeStore: strings.ToLower(getEnvOrDefault("CHALLENGE_STORE", "memory")),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),

		SecondFactorTTL:         getEnvDurationOrDefault("SECOND_FACTOR_TTL", 300*time.Second),
		SecondFactorMaxAttempts: getEnvIntOrDefault("SECOND_FACTOR_MAX_ATTEMPTS", 5),

		ConfirmationTTL:         getEnvDurationOrDefault("CONFIRMATION_TTL", 24*time.Hour),
		ConfirmationURL:         getEnvOrDefault("CONFIRMATION_URL", "http://localhost:3000/register"),
		ExposeConfirmationToken: getEnvBoolOrDefault("EXPOSE_CONFIRMATION_TOKEN", false),

		PepperFile:       getEnvOrDefault("PEPPER_FILE", "pepper"),
		AESSecretKey:     os.Getenv("AES_SECRET_KEY"),
		AESSecretKeyFile: os.Getenv("AES_SECRET_KEY_FILE"),
		TOTPIssuer:       getEnvOrDefault("TOTP_ISSUER", "ChocoMax"),

		MailSender:   strings.ToLower(getEnvOrDefault("MAIL_SENDER", "log")),
		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     getEnvIntOrDefault("MAIL_PORT", 587),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "noreply@chocomax.local"),
		MailFromName: getEnvOrDefault("MAIL_FROM_NAME", "ChocoMax"),
	}

	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == "postgres" {
		cfg.DatabaseURL = postgresURL(
			getEnvOrDefault("DB_HOST", "localhost"),
			getEnvIntOrDefault("DB_PORT", 5432),
			getEnvOrDefault("DB_NAME", "chocomax"),
			getEnvOrDefault("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
		)
	}

	return cfg
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for sqlite"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.ChallengeStore {
	case "memory":
	case "redis":
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis challenge store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CHALLENGE_STORE %q", c.ChallengeStore))
	}

	switch c.MailSender {
	case "log":
		if c.Env == "prod" {
			errs = append(errs, errors.New("MAIL_SENDER=log is not allowed with ENV=prod"))
		}
	case "smtp":
		if c.MailServer == "" {
			errs = append(errs, errors.New("MAIL_SERVER is required for smtp"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_SENDER %q", c.MailSender))
	}

	if c.AESSecretKey == "" && c.AESSecretKeyFile == "" {
		errs = append(errs, errors.New("AES_SECRET_KEY or AES_SECRET_KEY_FILE is required"))
	}
	if c.SecondFactorTTL <= 0 {
		errs = append(errs, errors.New("SECOND_FACTOR_TTL must be positive"))
	}
	if c.SecondFactorMaxAttempts < 1 {
		errs = append(errs, errors.New("SECOND_FACTOR_MAX_ATTEMPTS must be at least 1"))
	}

	return errors.Join(errs...)
}

// LoadAESKey returns the hex field encryption key, from the file when one is set.
func (c Config) LoadAESKey() (string, error) {
	if c.AESSecretKeyFile == "" {
		return c.AESSecretKey, nil
	}
	data, err := os.ReadFile(c.AESSecretKeyFile)
	if err != nil {
		return "", fmt.Errorf("read AES_SECRET_KEY_FILE: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func postgresURL(host string, port int, name, user, password string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
