package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerService(t *testing.T) {
	obs := config.DefaultObservabilityConfig()

	ls := logger.NewLoggerService(obs)
	require.NotNil(t, ls)
	assert.Nil(t, ls.GetApplication())

	// Every method is safe without an agent.
	ls.RecordCustomEvent("ContactDispatch", map[string]interface{}{"status": "sent"})
	ls.Shutdown()

	var nilService *logger.LoggerService
	assert.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}

func TestNewLoggerLevel(t *testing.T) {
	obs := config.DefaultObservabilityConfig()
	obs.Logging.Level = "warn"
	assert.Equal(t, zerolog.WarnLevel, logger.NewLogger(obs).GetLevel())

	obs.Logging.Level = ""
	obs.Environment = "production"
	assert.Equal(t, zerolog.InfoLevel, logger.NewLogger(obs).GetLevel())
}

func TestNewLoggerWritesFile(t *testing.T) {
	obs := config.DefaultObservabilityConfig()
	obs.Logging.File = filepath.Join(t.TempDir(), "massiliadrive.log")

	ls := logger.NewLoggerService(obs)
	log := logger.NewLoggerWithService(obs, ls)
	log.Info().Str("subject", "vtc").Msg("contact dispatched")
	ls.Shutdown()

	content, err := os.ReadFile(obs.Logging.File)
	require.NoError(t, err)
	assert.Contains(t, string(content), "contact dispatched")
	assert.Contains(t, string(content), `"subject":"vtc"`)
}
