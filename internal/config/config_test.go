package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_NAME", "APP_ENV", "APP_HOST", "APP_PORT", "PORT", "GIN_MODE",
	"JWT_SECRET", "JWT_EXPIRE_SECONDS", "LOGIN_MAX_ATTEMPTS", "LOGIN_WINDOW_SECONDS",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DB", "MYSQL_PARAMS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"GITHUB_BASE_URL", "GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET", "GITHUB_TIMEOUT_SECONDS",
	"LOG_LEVEL",
}

// clearEnv unsets every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.App.Port)
	assert.Equal(t, 36000, cfg.Auth.JWTExpireSeconds)
	assert.Equal(t, "https://api.github.com", cfg.Github.BaseURL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[app]
host = "127.0.0.1"
port = 9000

[auth]
jwt_secret = "from-file"
jwt_expire_seconds = 60

[mysql]
user = "dev"
db = "social"

[redis]
addr = "cache:6379"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("MYSQL_PORT", "3307")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr())
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.JWTExpireSeconds)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "dev:@tcp(127.0.0.1:3307)/social?parseTime=true&loc=Local&charset=utf8mb4&clientFoundRows=true", cfg.MySQLDSN())
}

func TestLoad_InvalidIntEnvFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.App.Port)
}

func TestLoad_RejectsEmptySecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadToml(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeConfig(t, "[app\nport = "))

	_, err := Load()
	assert.Error(t, err)
}
