package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "SERVER_PORT",
	"PROVIDE_BASE_URL", "PROVIDE_APPLICATION_TOKEN", "PROVIDE_VERIFY_SSL",
	"PROVIDE_TIMEOUT_SECONDS", "PROVIDE_FAULT_LOG_LEVEL", "PROVIDE_MOCK_MODE",
	"GIFT_MESSAGE_LINE_LENGTH", "GIFT_MESSAGE_VIRTUAL_NEWLINES",
	"REDIS_URL", "AVAILABILITY_CACHE_TTL_SECONDS",
	"PROXY_ENABLED", "PROXY_HOSTNAME", "PROXY_PORT", "PROXY_USERNAME", "PROXY_PASSWORD",
}

// clearEnv unsets every configuration key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDE_APPLICATION_TOKEN", "app-token")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)

	assert.Equal(t, "https://apiservice.providecommerce.com/", cfg.Provide.BaseURL)
	assert.Equal(t, "app-token", cfg.Provide.ApplicationToken)
	assert.True(t, cfg.Provide.VerifySSL)
	assert.Equal(t, 10*time.Second, cfg.Provide.Timeout())
	assert.Equal(t, "debug", cfg.Provide.FaultLogLevel)
	assert.False(t, cfg.Provide.MockMode)
	assert.Equal(t, 44, cfg.Provide.GiftMessageLineLength)
	assert.True(t, cfg.Provide.GiftMessageVirtualNewlines)
	assert.False(t, cfg.Provide.Proxy.HasProxy())

	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PROVIDE_BASE_URL", "https://sandbox.example.com/")
	t.Setenv("PROVIDE_APPLICATION_TOKEN", "app-token")
	t.Setenv("PROVIDE_VERIFY_SSL", "false")
	t.Setenv("PROVIDE_TIMEOUT_SECONDS", "3")
	t.Setenv("GIFT_MESSAGE_LINE_LENGTH", "40")
	t.Setenv("GIFT_MESSAGE_VIRTUAL_NEWLINES", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PROXY_ENABLED", "true")
	t.Setenv("PROXY_HOSTNAME", "proxy.internal")
	t.Setenv("PROXY_PORT", "3128")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://sandbox.example.com/", cfg.Provide.BaseURL)
	assert.False(t, cfg.Provide.VerifySSL)
	assert.Equal(t, 3*time.Second, cfg.Provide.Timeout())
	assert.Equal(t, 40, cfg.Provide.GiftMessageLineLength)
	assert.False(t, cfg.Provide.GiftMessageVirtualNewlines)
	assert.True(t, cfg.Cache.Enabled())
	assert.True(t, cfg.Provide.Proxy.HasProxy())
	assert.Equal(t, "http://proxy.internal:3128", cfg.Provide.Proxy.URL().String())
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	clearEnv(t)

	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
PROVIDE_APPLICATION_TOKEN=file-token
PROVIDE_MOCK_MODE=true
AVAILABILITY_CACHE_TTL_SECONDS=60
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "file-token", cfg.Provide.ApplicationToken)
	assert.True(t, cfg.Provide.MockMode)
	assert.Equal(t, time.Minute, cfg.Cache.TTL())
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
	assert.Contains(t, err.Error(), "PROVIDE_APPLICATION_TOKEN")
}
