package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected default driver %q, got %q", DriverPostgres, cfg.Database.Driver)
	}
	if cfg.Aggregation.Currency != "USD" {
		t.Errorf("expected default currency USD, got %q", cfg.Aggregation.Currency)
	}
	if cfg.Aggregation.TopNDefault != 5 {
		t.Errorf("expected default top-N 5, got %d", cfg.Aggregation.TopNDefault)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("UPSTREAM_BASE_URL", "http://records.local/api/")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("DISPLAY_CURRENCY", "eur")
	t.Setenv("TOP_RECURRING_DEFAULT", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected driver %q, got %q", DriverSQLite, cfg.Database.Driver)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled")
	}
	if cfg.Upstream.BaseURL != "http://records.local/api" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %s", cfg.Upstream.Timeout)
	}
	if cfg.Aggregation.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %q", cfg.Aggregation.Currency)
	}
	if cfg.Aggregation.TopNDefault != 5 {
		t.Errorf("expected unparsable value to fall back to 5, got %d", cfg.Aggregation.TopNDefault)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "DB_DRIVER",
		},
		{
			name:    "unknown currency",
			mutate:  func(c *Config) { c.Aggregation.Currency = "ZZZ" },
			wantErr: "DISPLAY_CURRENCY",
		},
		{
			name:    "empty secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "SERVER_PORT",
		},
		{
			name:    "rate limit without window",
			mutate:  func(c *Config) { c.RateLimit.Window = 0 },
			wantErr: "RATE_LIMIT",
		},
		{
			name:   "rate limit disabled ignores window",
			mutate: func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.Window = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Load()
	cfg.Database.Driver = "mysql"
	cfg.Aggregation.Currency = "ZZZ"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"DB_DRIVER", "DISPLAY_CURRENCY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}
