package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file with defaults filled in", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  token: "123456:test-token"
  admin_ids: [111, 222]
  group_chat_id: -100900
sheets:
  spreadsheet_name: "Deadline Artikel"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "123456:test-token", cfg.Telegram.Token)
		assert.Equal(t, []int64{111, 222}, cfg.Telegram.AdminIDs)
		assert.Equal(t, int64(-100900), cfg.Telegram.GroupChatID)
		assert.Equal(t, "Deadline Artikel", cfg.Sheets.SpreadsheetName)

		// Defaults.
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, DefaultCredentialsFile, cfg.Sheets.CredentialsFile)
		reminder, ok := cfg.Scheduler.Tasks["reminder"]
		require.True(t, ok)
		assert.True(t, reminder.Enabled)
		assert.Equal(t, 60*time.Second, reminder.Interval)
		assert.Equal(t, 10*time.Second, reminder.InitialDelay)
		assert.NotEmpty(t, cfg.Messages.Reminder)
		assert.NotEmpty(t, cfg.Messages.AskTitle)
	})

	t.Run("environment-only configuration", func(t *testing.T) {
		t.Setenv("BOT_TELEGRAM_TOKEN", "123456:env-token")
		t.Setenv("BOT_TELEGRAM_ADMIN_IDS", "111,222")
		t.Setenv("BOT_TELEGRAM_GROUP_CHAT_ID", "-100900")
		t.Setenv("BOT_SHEETS_SPREADSHEET_NAME", "Deadline Artikel")

		cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "123456:env-token", cfg.Telegram.Token)
		assert.Equal(t, []int64{111, 222}, cfg.Telegram.AdminIDs)
		assert.Equal(t, int64(-100900), cfg.Telegram.GroupChatID)
		assert.Equal(t, "Deadline Artikel", cfg.Sheets.SpreadsheetName)
	})

	t.Run("missing file fails validation without required fields", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty admin list rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
telegram:
  token: "123456:test-token"
  admin_ids: []
  group_chat_id: -100900
sheets:
  spreadsheet_name: "Deadline Artikel"
`)

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad log level rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
log:
  level: verbose
telegram:
  token: "123456:test-token"
  admin_ids: [111]
  group_chat_id: -100900
sheets:
  spreadsheet_name: "Deadline Artikel"
`)

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{AdminIDs: []int64{111, 222}}}

	assert.True(t, cfg.IsAdmin(111))
	assert.True(t, cfg.IsAdmin(222))
	assert.False(t, cfg.IsAdmin(333))
	assert.False(t, cfg.IsAdmin(0))
}
