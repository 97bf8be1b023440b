package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Defaults(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_DebugLevel(t *testing.T) {
	logger, err := New(Options{Level: "debug"})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_JSONFormat(t *testing.T) {
	logger, err := New(Options{Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNew_UnsupportedLevel(t *testing.T) {
	_, err := New(Options{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log level")
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log format")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"  info  ", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, err := parseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}
