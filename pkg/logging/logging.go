// Package logging builds the application's zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a configured zap.Logger. encoding selects between
// "console" output for a developer run and JSON otherwise; an
// unrecognized level falls back to info.
func NewLogger(level, encoding string) (*zap.Logger, error) {
	var config zap.Config
	if encoding == "console" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var zapLevel zapcore.Level
	if err := zapLevel.Set(level); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build()
}

// MustNewLogger creates a logger and panics if initialization fails.
// Useful at startup where running without logs is worse than dying.
func MustNewLogger(level, encoding string) *zap.Logger {
	logger, err := NewLogger(level, encoding)
	if err != nil {
		panic(err)
	}
	return logger
}
