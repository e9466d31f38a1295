// Package logging builds the zap logger shared by every layer.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"whatdayisit/internal/platform/config"
	apperrors "whatdayisit/internal/platform/errors"
)

// New returns a logger for cfg. With a log file it writes JSON there. With no
// file, interactive runs get a no-op logger because the terminal belongs to
// the UI, and headless runs log to stderr in console format.
func New(cfg config.LogConfig, interactive bool) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch {
	case cfg.File != "":
		zc = zap.NewProductionConfig()
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	case interactive:
		return zap.NewNop(), nil
	default:
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(raw string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(raw) == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}
	level, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("%w: log level %q", apperrors.ErrInvalidInput, raw)
	}
	return level, nil
}
