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

func Test_Load(t *testing.T) {
	t.Setenv("BOT_TOKEN", "secret")
	t.Setenv("DBL_TOKEN", "vote-secret")

	path := writeConfig(t, `
bot:
  prefix: "!"
  owner_id: "42"
  skills: [GENERAL, SETTINGS]
http:
  timeout: 3s
scheduler:
  timezone: UTC
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "!", cfg.Bot.Prefix)
	assert.Equal(t, "42", cfg.Bot.OwnerID)
	assert.Equal(t, []string{"GENERAL", "SETTINGS"}, cfg.Bot.Skills)
	assert.Equal(t, "Fortnite (Say !help)", cfg.Bot.Status)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, "secret", cfg.Secrets.BotToken)
	assert.Equal(t, "vote-secret", cfg.Secrets.DBLToken)

	// untouched sections keep their defaults
	assert.Equal(t, "data/bot.db", cfg.Database.Path)
	assert.Equal(t, 2, cfg.Log.MaxBackups)
	assert.Equal(t, "@hourly", cfg.Scheduler.ReportSpec)
}

func Test_Load_EnvOverridesFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "secret")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")

	cfg, err := Load(writeConfig(t, "database:\n  path: data/file.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}

func Test_Load_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
		path  func(t *testing.T) string
	}{
		{
			name:  "missing token",
			token: "",
			path:  func(t *testing.T) string { return writeConfig(t, "bot:\n  prefix: .\n") },
		},
		{
			name:  "missing explicit file",
			token: "secret",
			path:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
		},
		{
			name:  "malformed yaml",
			token: "secret",
			path:  func(t *testing.T) string { return writeConfig(t, "bot: [unclosed\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", tt.token)
			_, err := Load(tt.path(t))
			assert.Error(t, err)
		})
	}
}
