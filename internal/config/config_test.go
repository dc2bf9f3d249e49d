package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Database: Database{
			DSN:      "postgres://localhost/teamhub",
			MaxConns: 25,
			MinConns: 5,
		},
		Log:       Log{Level: "info", Format: "json"},
		Lifecycle: Lifecycle{TrashRetentionDays: 30},
		Sweeper:   Sweeper{ReminderWindowDays: 3, Interval: 24 * time.Hour},
		Push:      Push{WriteTimeout: 10 * time.Second},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max conns below min", func(c *Config) { c.Database.MaxConns = 2 }},
		{"zero retention", func(c *Config) { c.Lifecycle.TrashRetentionDays = 0 }},
		{"negative reminder window", func(c *Config) { c.Sweeper.ReminderWindowDays = -1 }},
		{"zero sweep interval", func(c *Config) { c.Sweeper.Interval = 0 }},
		{"zero push timeout", func(c *Config) { c.Push.WriteTimeout = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestTrashRetention(t *testing.T) {
	t.Parallel()

	l := Lifecycle{TrashRetentionDays: 30}
	if got, want := l.TrashRetention(), 30*24*time.Hour; got != want {
		t.Fatalf("TrashRetention() = %s, want %s", got, want)
	}
}
