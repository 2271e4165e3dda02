package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvReader_Defaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "tasks", cfg.Storage.Slot)
	assert.Equal(t, 3*time.Second, cfg.Notification.TTL)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("STORAGE_DRIVER", StorageDriverPostgres)
	t.Setenv("STORAGE_SLOT", "work")
	t.Setenv("NOTIFICATION_TTL", "1500ms")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "work", cfg.Storage.Slot)
	assert.Equal(t, 1500*time.Millisecond, cfg.Notification.TTL)
}

func TestEnvReader_UnknownEnv(t *testing.T) {
	t.Setenv("ENV", "staging")

	_, err := NewEnvReader().Read()
	assert.ErrorContains(t, err, "unknown env")
}

func TestEnvReader_UnknownDriver(t *testing.T) {
	t.Setenv("ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := NewEnvReader().Read()
	assert.ErrorContains(t, err, "unknown storage driver")
}
