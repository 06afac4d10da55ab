package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrms")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("UNIQUE_CHECK_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/hrms", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.UniqueCheckTimeout)
	assert.False(t, cfg.IsDev())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrms")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	unsetenv(t, "PORT")
	unsetenv(t, "APP_ENV")
	unsetenv(t, "UNIQUE_CHECK_TIMEOUT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 5*time.Second, cfg.UniqueCheckTimeout)
}

func TestLoad_EmptyOverrideFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrms")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("PORT", "")
	unsetenv(t, "UNIQUE_CHECK_TIMEOUT")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadClient(t *testing.T) {
	t.Setenv("HRMS_API_URL", "https://hr.example.com/api")
	t.Setenv("HRMS_API_TOKEN", "tok")
	t.Setenv("UNIQUE_CHECK_TIMEOUT", "3s")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com/api", cfg.APIURL)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // registers restore of the original value
	require.NoError(t, os.Unsetenv(key))
}
