package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderapp/wander/logger"
)

func TestConfigure(t *testing.T) {
	t.Run("sets the requested level", func(t *testing.T) {
		require.NoError(t, logger.Configure("debug", ""))
		assert.Equal(t, log.DebugLevel, logger.Logger.GetLevel())
	})

	t.Run("unknown levels fall back to warn", func(t *testing.T) {
		require.NoError(t, logger.Configure("loud", ""))
		assert.Equal(t, log.WarnLevel, logger.Logger.GetLevel())
	})

	t.Run("writes to the given file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wander.log")
		require.NoError(t, logger.Configure("info", path))

		logger.Logger.Info("hello from the test")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello from the test")
	})
}
