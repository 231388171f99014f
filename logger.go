package main

import (
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger. The level is read from log.level
// the first time it is called.
func Logger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		level, err := zapcore.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			level = zapcore.InfoLevel
		}

		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.DisableStacktrace = true

		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	})

	return logger
}
