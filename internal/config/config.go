// Package config loads server configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/tripsplit/internal/models"
)

// Store drivers.
const (
	DriverSQLite  = "sqlite"
	DriverMongoDB = "mongodb"
)

// Config represents the full server configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Session  SessionConfig
	Trip     TripConfig
	Digest   DigestConfig
	LogLevel string
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Driver      string
	SQLitePath  string
	MongoURI    string
	MongoDBName string
}

// SessionConfig configures participant session tokens.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// TripConfig holds the participant roster.
type TripConfig struct {
	Participants models.Roster
}

// DigestConfig holds the settlement digest schedule.
type DigestConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	roster := models.DefaultRoster()
	if v := os.Getenv("PARTICIPANTS"); v != "" {
		roster = models.NewRoster(strings.Split(v, ",")...)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("PORT", "8080"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverSQLite)),
			SQLitePath:  getenvWithDefault("DB_PATH", "./data/tripsplit.db"),
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", "tripsplit"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    ttl,
		},
		Trip: TripConfig{
			Participants: roster,
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON", "0 20 * * *"),
		},
		LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("DB_PATH must be provided")
		}
	case DriverMongoDB:
		if c.Store.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided when STORE_DRIVER=mongodb")
		}
		if c.Store.MongoDBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.Store.Driver, DriverSQLite, DriverMongoDB)
	}

	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET must be provided")
	}

	if c.Trip.Participants.Len() == 0 {
		return errors.New("PARTICIPANTS must name at least one participant")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
