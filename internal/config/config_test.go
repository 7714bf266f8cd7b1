package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  env: development\nmongo:\n  uri: mongodb://localhost:27017\n")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_URI", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5000, cfg.App.Port)
	require.Equal(t, 15, cfg.App.JWT.SessionTTLDays)
	require.Equal(t, "users", cfg.Mongo.UserCollection)
	require.Equal(t, "tweets", cfg.Mongo.TweetCollection)
	require.Equal(t, 15*time.Second, cfg.App.ReadTimeout)
	require.Equal(t, 60*time.Second, cfg.App.IdleTimeout)
	require.Equal(t, 15*time.Second, cfg.Mongo.ConnectTimeout)
	require.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	require.Equal(t, 15*24*time.Hour, cfg.SessionTTL())
	require.Equal(t, time.Hour, cfg.ResetTokenTTL())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "app:\n  env: development\n  readTimeoutSeconds: 30\nmongo:\n  uri: mongodb://localhost:27017\n")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SESSION_TTL_DAYS", "7")
	t.Setenv("RESET_TOKEN_TTL_MINUTES", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, 30*time.Second, cfg.App.ReadTimeout)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
	require.Equal(t, 30*time.Minute, cfg.ResetTokenTTL())
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, "mongo:\n  uri: mongodb://localhost:27017\n")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	path := writeConfig(t, "app:\n  env: development\n")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_URI", "")

	_, err := Load(path)
	require.Error(t, err)
}
