package logging_test

import (
	"testing"

	"github.com/filedeck/filedeck/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromConfigHonorsLevel(t *testing.T) {
	logger := logging.FromConfig("warn", false)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestFromConfigBadLevelFallsBack(t *testing.T) {
	logger := logging.FromConfig("loud", false)
	require.NotNil(t, logger)

	assert.NotPanics(t, func() { logger.Info("dropped") })
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewDevelopmentEnablesDebug(t *testing.T) {
	logger := logging.NewDevelopment()
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
