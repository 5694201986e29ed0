// Package config loads server settings from the environment, an optional
// .env file and command-line flags. Flags win over the environment, which
// wins over the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minSecretLength = 32
)

// Config holds every runtime setting of the server.
type Config struct {
	Port          string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	SessionSecret string
	CookieSecure  bool
	LogLevel      slog.Level
}

// Load reads an optional .env file, then the environment, then parses args
// (without the program name). A missing .env file is not an error.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(args, os.Getenv)
}

func parse(args []string, getenv func(string) string) (*Config, error) {
	envOr := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cookieSecure := true
	if v := getenv("COOKIE_SECURE"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE %q: %w", v, err)
		}
		cookieSecure = parsed
	}

	cfg := &Config{SessionSecret: getenv("SESSION_SECRET")}
	var logLevel string

	flags := pflag.NewFlagSet("ocean-watch", pflag.ContinueOnError)
	flags.StringVar(&cfg.Port, "port", envOr("PORT", "8080"), "HTTP listen port")
	flags.StringVar(&cfg.DBDriver, "db-driver", envOr("DATABASE_DRIVER", DriverSQLite), "storage backend: sqlite or postgres")
	flags.StringVar(&cfg.DBPath, "db-path", envOr("DATABASE_PATH", "data/app.db"), "SQLite database file")
	flags.StringVar(&cfg.DatabaseURL, "database-url", getenv("DATABASE_URL"), "Postgres connection URL")
	flags.BoolVar(&cfg.CookieSecure, "cookie-secure", cookieSecure, "mark cookies Secure (disable only for local development)")
	flags.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that prevents the server from starting.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET environment variable is required")
	}
	if len(c.SessionSecret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters for HMAC-SHA256 security", minSecretLength)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q (supported: sqlite, postgres)", c.DBDriver)
	}
	return nil
}
