package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRecommend.Limit, cfg.Recommend.Limit)
	assert.Equal(t, DefaultWatchInterval, cfg.Watch.Interval)
	assert.Equal(t, DefaultReminderHour, cfg.Watch.ReminderHour)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, DefaultDBName, filepath.Base(cfg.DBPath))
	assert.NotContains(t, cfg.DBPath, "~")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	wd, err := cfg.FirstWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, wd)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
timezone: Europe/Berlin
week_start: Sunday
recommend:
  limit: 3
watch:
  interval: 5m
  reminder_hour: 18
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Recommend.Limit)
	assert.Equal(t, 5*time.Minute, cfg.Watch.Interval)
	assert.Equal(t, 18, cfg.Watch.ReminderHour)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	wd, err := cfg.FirstWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WELLWATCH_RECOMMEND_LIMIT", "4")
	t.Setenv("WELLWATCH_TIMEZONE", "UTC")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Recommend.Limit)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"timezone", "timezone: Mars/Olympus"},
		{"week start", "week_start: someday"},
		{"reminder hour", "watch:\n  reminder_hour: 24"},
		{"interval", "watch:\n  interval: 0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.db"), expandPath("~/x/y.db"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}
