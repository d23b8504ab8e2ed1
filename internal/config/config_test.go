package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("BASE_ADMIN_CHAT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(0), cfg.BaseAdminChatID)
	assert.Equal(t, "calendar.db", cfg.DatabaseURL)
	assert.Empty(t, cfg.HolidaysFile)
	assert.Equal(t, "Asia/Tehran", cfg.Location.String())
	assert.False(t, cfg.Debug)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BASE_ADMIN_CHAT_ID", "42")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("HOLIDAYS_FILE", "holidays.json")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("BOT_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.BaseAdminChatID)
	assert.Equal(t, "file::memory:", cfg.DatabaseURL)
	assert.Equal(t, "holidays.json", cfg.HolidaysFile)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{"TELEGRAM_BOT_TOKEN": ""}},
		{"bad admin id", map[string]string{"BASE_ADMIN_CHAT_ID": "admin"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range c.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
