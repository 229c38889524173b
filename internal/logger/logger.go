// Package logger builds the process logger and carries per-request loggers
// through contexts.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/campusbot/internal/version"
)

// NewLogger creates a zap logger for the given environment.
// prod uses sampled JSON output tagged with the service version, local/dev
// use colored console output. A non-empty level overrides the env default.
func NewLogger(env, level string) (*zap.Logger, error) {
	var (
		cfg    zap.Config
		fields []zap.Field
	)
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		fields = append(fields,
			zap.String("service", "campusbot"),
			zap.String("version", version.Version),
		)
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel), zap.Fields(fields...))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
