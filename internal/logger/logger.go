// Package logger wraps zap construction so binaries share one logging setup.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the shared zap instance.
type Logger struct {
	// Log is the underlying structured logger. It is a no-op until
	// Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("Debug",
// "Info", "Warn", "Error") and replaces the no-op instance.
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = log
	return nil
}
