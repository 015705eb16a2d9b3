package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  env: development
mongo:
  uri: mongodb://localhost:27017
  database: testdb
jwt:
  secret: s3cret
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, "users", cfg.Mongo.Collection)
	require.Equal(t, 80, cfg.JWT.TTLHours)
	require.Equal(t, 80*time.Hour, cfg.TokenTTL)
	require.Equal(t, 12, cfg.Security.PasswordHashCost)
	require.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
mongo:
  uri: mongodb://localhost:27017
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt secret")
}

func TestLoadRequiresMongoURI(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: s3cret
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mongo uri")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "from-env")
	path := writeConfig(t, `
mongo:
  uri: mongodb://localhost:27017
jwt:
  secret: ""
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.JWT.Secret)
}
