package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "salon"
password = "from-file"
dbname = "salon"

[redis]
enabled = true

[admin]
user_ids = [1, 2]
`)
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 60, cfg.Redis.SystemConfigTTL)
	assert.Equal(t, 2, cfg.Booking.GracePeriodMinutes)
	assert.Equal(t, 3, cfg.Booking.MaxReservationAttempts)
	assert.Equal(t, []int64{1, 2}, cfg.Admin.UserIDs)
	assert.Contains(t, cfg.Database.DSN(), "dbname=salon")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
