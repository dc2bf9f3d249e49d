package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database  Database  `yaml:"database"`
	Log       Log       `yaml:"log"`
	Lifecycle Lifecycle `yaml:"lifecycle"`
	Sweeper   Sweeper   `yaml:"sweeper"`
	Push      Push      `yaml:"push"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrationsDir   string        `yaml:"migrations_dir"     env:"DATABASE_MIGRATIONS_DIR"     env-default:"./migrations"`
}

// Log holds logging settings.
type Log struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Lifecycle holds soft-delete lifecycle settings.
type Lifecycle struct {
	// TrashRetentionDays is how long a soft-deleted task or project stays
	// restorable before "empty trash" is allowed to purge it.
	TrashRetentionDays int `yaml:"trash_retention_days" env:"LIFECYCLE_TRASH_RETENTION_DAYS" env-default:"30"`
}

// Sweeper holds due-date reminder sweep settings.
type Sweeper struct {
	// ReminderWindowDays is the look-ahead for due-date reminders: tasks due
	// within [today, today+window] get a reminder.
	ReminderWindowDays int           `yaml:"reminder_window_days" env:"SWEEPER_REMINDER_WINDOW_DAYS" env-default:"3"`
	Interval           time.Duration `yaml:"interval"             env:"SWEEPER_INTERVAL"             env-default:"24h"`
}

// Push holds real-time push settings.
type Push struct {
	WriteTimeout time.Duration `yaml:"write_timeout" env:"PUSH_WRITE_TIMEOUT" env-default:"10s"`
}

// TrashRetention returns the retention window as a duration.
func (l Lifecycle) TrashRetention() time.Duration {
	return time.Duration(l.TrashRetentionDays) * 24 * time.Hour
}
