package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GEMTRACK_SYSTEM_WORKDIR", dir)

	cfg, err := LoadConfig(filepath.Join("testdata", "missing.yml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	file := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(file, []byte("{}\n"), 0o600))
	cfg, err = LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 30, cfg.Inventory.UserRetentionDays)
	assert.Equal(t, filepath.Join(dir, "data", "gemtrack.db"), cfg.GetDatabasePath())
	assert.DirExists(t, cfg.GetLogDir())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gemtrack.yml")
	content := `
system:
  workdir: ` + dir + `
web:
  port: 9000
database:
  type: postgres
  name: gemtrack
inventory:
  low_stock_threshold: 3
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	t.Setenv("GEMTRACK_WEB_PORT", "9100")
	t.Setenv("GEMTRACK_DB_DEBUG", "true")
	t.Setenv("GEMTRACK_LOW_STOCK_THRESHOLD", "not-a-number")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, 3, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
}

func TestRedactedMasksSecrets(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Security.JwtSecret = "jwt-secret"
	cfg.Security.AdminPassword = "admin-pw"
	cfg.Database.Passwd = "db-pw"

	out := cfg.Redacted()
	assert.Equal(t, redactedValue, out.Security.JwtSecret)
	assert.Equal(t, redactedValue, out.Security.AdminPassword)
	assert.Equal(t, redactedValue, out.Database.Passwd)
	assert.Equal(t, "admin", out.Security.AdminUsername)
	assert.Equal(t, "jwt-secret", cfg.Security.JwtSecret)

	cfg.Database.Passwd = ""
	assert.Empty(t, cfg.Redacted().Database.Passwd)
}
