// Package observability provides logging utilities.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/monbattle/internal/config"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
)

// NewLogger creates a structured logger from the given logging configuration.
// fields are attached to every entry.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, fields ...zap.Field) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		// Rollouts log one line per battle; sampling would drop most of them.
		zapCfg.Sampling = nil
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build(zap.Fields(fields...))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NarrationHook returns a battle event callback that writes each line of
// narration to logger at debug level.
//
// Precondition: logger must be non-nil.
func NarrationHook(logger *zap.Logger) func(turn int, e sim.Event) {
	return func(turn int, e sim.Event) {
		if ce := logger.Check(zapcore.DebugLevel, e.Text); ce != nil {
			ce.Write(
				zap.Int("turn", turn),
				zap.Stringer("side", e.Side),
				zap.Stringer("kind", e.Kind),
			)
		}
	}
}
