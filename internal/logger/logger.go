// Package logger собирает zap логгер из настроек конфигурации.
package logger

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log параметры логгера
type Log struct {
	Level  string
	Format string // json или console
	Sink   string // путь файла; пусто - stderr
}

// NewLogger создает именованный логгер. Неизвестный уровень - ошибка.
func NewLogger(cfg Log, name string) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Sink != "" {
		zapCfg.OutputPaths = []string{cfg.Sink}
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return log.Named(name), nil
}

// ParseLevel разбирает уровень логирования; пустая строка - info
func ParseLevel(raw string) (zapcore.Level, error) {
	if strings.TrimSpace(raw) == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "logger level %q", raw)
	}
	return level, nil
}
