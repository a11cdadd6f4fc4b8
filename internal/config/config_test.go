package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/server-warden/internal/messages"
)

var keys = []string{
	"DISCORD_TOKEN", "GUILD_ID", "LOG_CHANNEL_ID", "LOG_LEVEL", "LOG_FILE",
	"LOG_TIMEZONE", "LOG_CHANNEL_RATE", "LOCALE",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("GUILD_ID", "123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.DiscordToken)
	assert.Equal(t, "123", cfg.GuildID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Local", cfg.LogTimezone)
	assert.Equal(t, 5, cfg.LogChannelRate)
	assert.Equal(t, messages.EN, cfg.MessageLocale())
	assert.Empty(t, cfg.LogChannelID)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadRequiredKeys(t *testing.T) {
	t.Run("token", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GUILD_ID", "123")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DISCORD_TOKEN")
	})

	t.Run("guild", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_TOKEN", "token")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GUILD_ID")
	})
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("timezone", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("GUILD_ID", "123")
		t.Setenv("LOG_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		assert.ErrorContains(t, err, "LOG_TIMEZONE")
	})

	t.Run("rate", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("GUILD_ID", "123")
		t.Setenv("LOG_CHANNEL_RATE", "-1")

		_, err := Load()
		assert.ErrorContains(t, err, "LOG_CHANNEL_RATE")
	})
}

func TestLoadFromDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DISCORD_TOKEN=from-file\nGUILD_ID=42\nLOG_TIMEZONE=UTC\nLOCALE=ja\nLOG_CHANNEL_ID=99\n",
	), 0o600))
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.DiscordToken)
	assert.Equal(t, "42", cfg.GuildID)
	assert.Equal(t, "99", cfg.LogChannelID)
	assert.Equal(t, messages.JA, cfg.MessageLocale())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadEnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DISCORD_TOKEN=from-file\nGUILD_ID=1\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GUILD_ID") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DiscordToken)
}
