// Package log builds the zap logger shared by the front ends.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr. level is one of debug, info, warn or
// error; encoding is console or json. Empty values fall back to info and
// console.
func New(level, encoding string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	if encoding == "" {
		encoding = "console"
	}

	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	config := zap.Config{
		Level:            atomicLevel,
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Must is New for entry points, falling back to a no-op logger on error
func Must(level, encoding string) *zap.Logger {
	logger, err := New(level, encoding)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
