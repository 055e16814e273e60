package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"diabetesapi/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	log, level, err := New(config.LogConfig{Level: "warn", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	log.Info("dropped")
	log.Warn("kept", zap.String("component", "test"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestSetLevel(t *testing.T) {
	level := zap.NewAtomicLevel()
	require.NoError(t, SetLevel(level, "debug"))
	assert.Equal(t, zapcore.DebugLevel, level.Level())

	require.NoError(t, SetLevel(level, ""))
	assert.Equal(t, zapcore.InfoLevel, level.Level())

	assert.Error(t, SetLevel(level, "chatty"))
	assert.Equal(t, zapcore.InfoLevel, level.Level())
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
