// Package config provides configuration loading and defaults for wellwatch.
package config

import "time"

// DefaultConfigDir is the default location for wellwatch configuration.
const DefaultConfigDir = "~/.config/wellwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "wellwatch.db"

// EnvPrefix prefixes environment overrides, e.g. WELLWATCH_TIMEZONE.
const EnvPrefix = "WELLWATCH"

// Default values for the remaining keys.
const (
	DefaultTimezone      = "Local"
	DefaultWeekStart     = "monday"
	DefaultLogLevel      = "info"
	DefaultReminderHour  = 20
	DefaultWatchInterval = 15 * time.Minute
)

// DefaultRecommend holds recommendation display defaults.
var DefaultRecommend = Recommend{
	Limit: 10,
}

// DefaultOutput holds output display defaults.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
