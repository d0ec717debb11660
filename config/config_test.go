package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("CONFIG_FILE", "")
	require.NoError(t, os.Unsetenv("CONFIG_FILE"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Empty(t, cfg.Server.AllowedOrigins)
	assert.Equal(t, DriverPQ, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPGX, cfg.Database.Driver)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
	// untouched values keep their defaults
	assert.Equal(t, "postgres", cfg.Database.User)
}

func TestLoad_AllowedOriginsList(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
server:
  port: "7070"
database:
  host: db.internal
  name: inventory
app:
  version: "2.3.4"
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_NAME", "from_env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from_env", cfg.Database.Name)
	assert.Equal(t, "2.3.4", cfg.App.Version)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_FILE", "does-not-exist.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a host when no dsn is given", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Host = ""
		assert.Error(t, cfg.Validate())

		cfg.Database.DSN = "postgres://u@h/db"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("requires a port", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a positive pool size", func(t *testing.T) {
		cfg := Default()
		cfg.Database.MaxConns = 0
		assert.Error(t, cfg.Validate())
	})
}
