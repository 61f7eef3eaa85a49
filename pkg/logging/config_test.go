package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foiafix/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		cfg := &logging.Config{
			Level:     "debug",
			Format:    "json",
			Output:    path,
			AddCaller: true,
			Fields:    map[string]any{"tool": "foiafix"},
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Msg("repaired report")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.Contains(t, output, "repaired report")
		assert.Contains(t, output, `"tool":"foiafix"`)
		assert.Contains(t, output, `"caller"`)
	})

	t.Run("Configure filters below the configured level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("console format uses short level names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Str("agency", "DOJ").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger := logging.NewLoggerFromConfig(nil)
			logger.Debug().Msg("ignored")
		})
	})
}
