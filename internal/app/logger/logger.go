package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger: JSON in production or when format is
// "json", coloured console output otherwise.
func New(level, format, environment string) (*zap.Logger, error) {
	var zapCfg zap.Config
	if format == "json" || environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         "quotedesk",
		"environment": environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
