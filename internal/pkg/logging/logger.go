// Package logging builds the service's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Level is a zap level name; empty means info.
	Level string
	// Development switches to a coloured console encoder.
	Development bool
	// Directory, when set, adds a rotating file sink next to stdout.
	Directory  string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a logger writing to stdout and, when cfg.Directory is set, to
// a per-run file rotated by lumberjack.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEncoder(cfg.Development), zapcore.Lock(os.Stdout), level),
	}

	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, fmt.Errorf("log directory: %w", err)
		}
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(rotatingFile(cfg)), level))
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func rotatingFile(cfg Config) *lumberjack.Logger {
	runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Directory, fmt.Sprintf("freight-%s.log", runTimestamp)),
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: orDefault(cfg.MaxBackups, 7),
		MaxAge:     orDefault(cfg.MaxAgeDays, 30),
		Compress:   true,
	}
}

func stdoutEncoder(development bool) zapcore.Encoder {
	if development {
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(config)
	}
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(config)
}

func fileEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	})
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
