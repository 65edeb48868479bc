// Package logger constructs the zap logger shared by both binaries. Logs
// are written to the console in a human readable format.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for the given application environment. The "dev"
// environment uses zap's development config (DEBUG level, caller info);
// everything else uses the production config with console encoding and
// ISO8601 timestamps.
func New(env string) *zap.Logger {
	if env == "dev" {
		cfg := zap.NewDevelopmentConfig()
		l, _ := cfg.Build()
		return l
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	l, _ := cfg.Build()
	return l
}
