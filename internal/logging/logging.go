// Package logging builds the zap logger used across the plugin.
package logging

import (
	"fmt"

	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger writing to cfg's log file. With no file
// configured it falls back to fallback: "stderr" for the console runner, or
// "" to disable logging entirely, which is what the plugin does inside a
// host that has no console.
func New(cfg domain.Config, fallback string) (*zap.Logger, error) {
	output := cfg.GetLogFile()
	if output == "" {
		output = fallback
	}
	if output == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.GetLogLevel(), err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{output}
	zcfg.ErrorOutputPaths = []string{output}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
