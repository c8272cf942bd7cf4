package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/calendar"
	"github.com/spf13/viper"
)

// Config is the top-level wellwatch configuration.
type Config struct {
	DBPath    string    `mapstructure:"db_path"`
	Timezone  string    `mapstructure:"timezone"`
	WeekStart string    `mapstructure:"week_start"`
	Recommend Recommend `mapstructure:"recommend"`
	Output    Output    `mapstructure:"output"`
	Watch     Watch     `mapstructure:"watch"`
	Log       Log       `mapstructure:"log"`
}

// Recommend controls how recommendations are listed.
type Recommend struct {
	Limit int `mapstructure:"limit"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Watch configures the background watcher.
type Watch struct {
	Interval     time.Duration `mapstructure:"interval"`
	ReminderHour int           `mapstructure:"reminder_hour"`
}

// Log configures the process logger.
type Log struct {
	Level string `mapstructure:"level"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location),
// applies WELLWATCH_* environment overrides and returns a validated Config
// with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("week_start", DefaultWeekStart)
	v.SetDefault("recommend.limit", DefaultRecommend.Limit)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("watch.interval", DefaultWatchInterval)
	v.SetDefault("watch.reminder_hour", DefaultReminderHour)
	v.SetDefault("log.level", DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed as viper defaults.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval)
	}
	if c.Watch.ReminderHour < 0 || c.Watch.ReminderHour > 23 {
		return fmt.Errorf("watch.reminder_hour must be between 0 and 23, got %d", c.Watch.ReminderHour)
	}
	return nil
}

// Location resolves the configured timezone. "Local" and "" mean the
// system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// FirstWeekday resolves week_start.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	wd, err := calendar.ParseWeekday(c.WeekStart)
	if err != nil {
		return 0, fmt.Errorf("week_start: %w", err)
	}
	return wd, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
