package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around zap carrying the engine's logging
// conventions: structured fields, JSON to stderr, no caller annotation.
type Logger struct {
	z *zap.Logger
}

// New returns a logger filtering below the given level.
func New(level zapcore.Level) *Logger {
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	z, err := config.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{z: z}
}

// Nop returns a logger that discards everything. Used as the default in
// library code so callers that don't care about logs pass nothing.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// With returns a child logger carrying the given fields on every entry.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

// Sync flushes buffered entries; call before process exit.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}
