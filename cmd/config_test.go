package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"statusflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func minimalEnv() map[string]string {
	return map[string]string{
		"ORDERS_BACKEND_URL":  "http://orders:8080/api/orders",
		"REFUNDS_BACKEND_URL": "https://refunds.internal/api/refunds",
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		cfg, err := ParseConfig(env(minimalEnv()))

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
		assert.Equal(t, "*/30 * * * * *", cfg.ResyncSchedule)
		assert.Equal(t, 4, cfg.ResyncConcurrency)
		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	})

	t.Run("should read every variable", func(t *testing.T) {
		values := minimalEnv()
		values["HTTP_PORT"] = "9090"
		values["BACKEND_TIMEOUT"] = "2s"
		values["RESYNC_SCHEDULE"] = "@every 1m"
		values["RESYNC_CONCURRENCY"] = "16"
		values["LOG_LEVEL"] = "debug"

		cfg, err := ParseConfig(env(values))

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.HTTPPort)
		assert.Equal(t, 2*time.Second, cfg.BackendTimeout)
		assert.Equal(t, "@every 1m", cfg.ResyncSchedule)
		assert.Equal(t, 16, cfg.ResyncConcurrency)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	})

	t.Run("should require both backend urls", func(t *testing.T) {
		_, err := ParseConfig(env(nil))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "ORDERS_BACKEND_URL")
		assert.Contains(t, err.Error(), "REFUNDS_BACKEND_URL")
	})

	t.Run("should reject out of range concurrency", func(t *testing.T) {
		for _, raw := range []string{"0", "65"} {
			values := minimalEnv()
			values["RESYNC_CONCURRENCY"] = raw

			_, err := ParseConfig(env(values))

			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange, raw)
		}
	})

	t.Run("should report every invalid value at once", func(t *testing.T) {
		values := minimalEnv()
		values["HTTP_PORT"] = "http"
		values["ORDERS_BACKEND_URL"] = "orders:8080"
		values["BACKEND_TIMEOUT"] = "-1s"
		values["RESYNC_SCHEDULE"] = "every minute"
		values["LOG_LEVEL"] = "verbose"

		_, err := ParseConfig(env(values))

		require.Error(t, err)
		for _, name := range []string{"HTTP_PORT", "ORDERS_BACKEND_URL", "BACKEND_TIMEOUT", "RESYNC_SCHEDULE", "LOG_LEVEL"} {
			assert.Contains(t, err.Error(), name)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("should read an env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte(
			"ORDERS_BACKEND_URL=http://orders\nREFUNDS_BACKEND_URL=http://refunds\nRESYNC_CONCURRENCY=8\n"), 0o600))
		t.Setenv("ORDERS_BACKEND_URL", "")
		t.Setenv("REFUNDS_BACKEND_URL", "")
		t.Setenv("RESYNC_CONCURRENCY", "")
		os.Unsetenv("ORDERS_BACKEND_URL")
		os.Unsetenv("REFUNDS_BACKEND_URL")
		os.Unsetenv("RESYNC_CONCURRENCY")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "http://orders", cfg.OrdersBackendURL)
		assert.Equal(t, 8, cfg.ResyncConcurrency)
	})

	t.Run("should tolerate a missing env file", func(t *testing.T) {
		t.Setenv("ORDERS_BACKEND_URL", "http://orders")
		t.Setenv("REFUNDS_BACKEND_URL", "http://refunds")

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		assert.Equal(t, "http://refunds", cfg.RefundsBackendURL)
	})
}
