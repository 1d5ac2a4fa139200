package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "DB_PATH", "MONGODB_URI", "MONGODB_DB_NAME",
		"SESSION_SECRET", "SESSION_TTL", "PARTICIPANTS", "DIGEST_CRON", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_SECRET", "s3cret")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("Port = %q, want 8080", cfg.Server.Port)
		}
		if cfg.Store.Driver != DriverSQLite {
			t.Errorf("Driver = %q, want sqlite", cfg.Store.Driver)
		}
		if cfg.Session.TTL != 720*time.Hour {
			t.Errorf("TTL = %v, want 720h", cfg.Session.TTL)
		}
		if cfg.Trip.Participants.Len() != 7 {
			t.Errorf("Participants = %v, want the default roster", cfg.Trip.Participants.Names())
		}
		if cfg.Digest.CronSchedule != "0 20 * * *" {
			t.Errorf("CronSchedule = %q", cfg.Digest.CronSchedule)
		}
	})

	t.Run("env file", func(t *testing.T) {
		clearEnv(t)
		envFile := filepath.Join(t.TempDir(), ".env")
		content := strings.Join([]string{
			"SESSION_SECRET=from-file",
			"PARTICIPANTS= Iwa, Caca ,,Iwa",
			"STORE_DRIVER=MongoDB",
			"MONGODB_URI=mongodb://localhost:27017",
			"SESSION_TTL=1h",
		}, "\n")
		if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}

		cfg, err := Load(envFile)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Session.Secret != "from-file" {
			t.Errorf("Secret = %q", cfg.Session.Secret)
		}
		if names := cfg.Trip.Participants.Names(); len(names) != 2 || names[0] != "Iwa" || names[1] != "Caca" {
			t.Errorf("Participants = %v, want [Iwa Caca]", names)
		}
		if cfg.Store.Driver != DriverMongoDB || cfg.Store.MongoDBName != "tripsplit" {
			t.Errorf("Store = %+v", cfg.Store)
		}
		if cfg.Session.TTL != time.Hour {
			t.Errorf("TTL = %v, want 1h", cfg.Session.TTL)
		}
	})

	t.Run("invalid TTL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SESSION_SECRET", "s3cret")
		t.Setenv("SESSION_TTL", "forever")
		if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Error("expected an error for an invalid SESSION_TTL")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		clearEnv(t)
		t.Setenv("SESSION_SECRET", "s3cret")
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing secret", func(c *Config) { c.Session.Secret = "" }, "SESSION_SECRET"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "STORE_DRIVER"},
		{"mongodb without uri", func(c *Config) { c.Store.Driver = DriverMongoDB }, "MONGODB_URI"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.errMsg)
			}
		})
	}

	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for nil config")
		}
	})
}
