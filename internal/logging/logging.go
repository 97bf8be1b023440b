// Package logging builds the logger the CLI commands share.
package logging

import (
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select how much the CLI says and how it says it.
type Options struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string

	// Format is console or json. Empty means console.
	Format string
}

// New builds a logger writing to stderr, keeping stdout free for command
// output.
func New(opts Options) (*zap.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	enc := encoderConfig()
	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		encoder = zapcore.NewJSONEncoder(enc)
	case "console", "":
		encoder = zapcore.NewConsoleEncoder(enc)
	default:
		return nil, errors.New("logging: unsupported log format")
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)
	return zap.New(core), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, errors.New("logging: unsupported log level")
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}
