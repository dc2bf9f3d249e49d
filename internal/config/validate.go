package config

import "fmt"

// Validate checks configuration invariants that cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database: max_conns (%d) < min_conns (%d)", c.Database.MaxConns, c.Database.MinConns)
	}
	if c.Lifecycle.TrashRetentionDays <= 0 {
		return fmt.Errorf("lifecycle: trash_retention_days must be positive, got %d", c.Lifecycle.TrashRetentionDays)
	}
	if c.Sweeper.ReminderWindowDays < 0 {
		return fmt.Errorf("sweeper: reminder_window_days must not be negative, got %d", c.Sweeper.ReminderWindowDays)
	}
	if c.Sweeper.Interval <= 0 {
		return fmt.Errorf("sweeper: interval must be positive, got %s", c.Sweeper.Interval)
	}
	if c.Push.WriteTimeout <= 0 {
		return fmt.Errorf("push: write_timeout must be positive, got %s", c.Push.WriteTimeout)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}
