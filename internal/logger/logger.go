// Package logger provides the server-wide structured logger.
//
// It keeps the call-site shape of the original go-redis Logger (Info/Warn/
// Error/Debug, printf-style) but backs it with zap so log lines are
// structured and levelled the way the rest of the pack does it.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger behind the Info/Warn/Error/Debug
// call-site shape used throughout the server.
type Logger struct {
	s *zap.SugaredLogger
}

var std = New("info")

// New builds a Logger at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func New(level string) *Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)

	return &Logger{s: zap.New(core).Sugar()}
}

// Default returns the process-wide logger. Replace it with SetDefault
// during startup once flags/config are known.
func Default() *Logger { return std }

// SetDefault installs l as the process-wide logger returned by Default.
func SetDefault(l *Logger) { std = l }

func (l *Logger) Info(format string, v ...any)  { l.s.Infof(format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.s.Warnf(format, v...) }
func (l *Logger) Error(format string, v ...any) { l.s.Errorf(format, v...) }
func (l *Logger) Debug(format string, v ...any) { l.s.Debugf(format, v...) }

// Sync flushes any buffered log entries. Call on shutdown.
func (l *Logger) Sync() { _ = l.s.Sync() }

// With returns a child logger annotated with the given key/value pairs,
// e.g. logger.Default().With("client_id", id).
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{s: l.s.With(kv...)}
}
