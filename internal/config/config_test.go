package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("FIRM_NAME", "Smith & Co CPA")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, "Smith & Co CPA", cfg.Firm.Name)
	assert.False(t, cfg.SeedDemo)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"STORE_DRIVER", "DEFAULT_ACTOR", "SEED_DEMO_DATA", "APP_TIMEZONE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "Current User", cfg.Firm.DefaultActor)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.False(t, cfg.MinIO.Enabled())
}

func TestMinIOConfig_Enabled(t *testing.T) {
	assert.True(t, MinIOConfig{Endpoint: "localhost:9000", Bucket: "docs"}.Enabled())
	assert.False(t, MinIOConfig{Endpoint: "localhost:9000"}.Enabled())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
