package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "k")

	cfg, err := Load("elearn")
	require.NoError(t, err)

	assert.Equal(t, "elearn", cfg.ServiceName)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "sugam", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.RequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.False(t, cfg.LoginAudit)
	assert.Nil(t, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "k")
	t.Setenv("API_PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOGIN_AUDIT_ENABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MONGO_REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := Load("elearn")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.True(t, cfg.LoginAudit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Mongo.RequestTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("SESSION_SECRET", "")
	_, err := Load("elearn")
	assert.ErrorContains(t, err, "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "k")
	t.Setenv("STORE_DRIVER", "redis")
	_, err = Load("elearn")
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
