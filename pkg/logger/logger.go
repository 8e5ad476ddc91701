package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds the process logger. Unknown levels fall back to info and
// unknown formats to JSON. fields are attached to every entry.
func New(level, format string, fields ...zap.Field) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, FormatConsole) {
		cfg.Encoding = FormatConsole
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = parseLevel(level)
	cfg.Sampling = nil
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log.With(fields...)
}

func parseLevel(lvl string) zap.AtomicLevel {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn", "warning":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
