// Package logging builds the zap logger from the [logging] config section.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/ratio/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// New creates a logger from cfg. A non-empty levelOverride (from the
// --log-level flag or RATIO_LOG_LEVEL) wins over cfg.Level. Output goes to
// stderr unless cfg.OutputFile is set.
func New(cfg config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch cfg.Format {
	case "console", "":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating log dir %s: %w", dir, err)
			}
		}
		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	return zc.Build()
}
