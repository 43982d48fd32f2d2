// Package logging provides structured logging for the m3u8-common
// libraries. It wraps hashicorp/go-hclog behind a small interface so
// that library packages can log with typed fields without binding
// callers to a specific backend.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Fields holds structured log fields
type Fields map[string]any

// Logger is the logging interface used across the library
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

// hclogLogger adapts an hclog.Logger to the Logger interface
type hclogLogger struct {
	logger hclog.Logger
}

// NewLogger creates a Logger backed by hclog with the given name and level
func NewLogger(name string, level hclog.Level) Logger {
	return NewLoggerWithOutput(name, level, os.Stderr)
}

// NewLoggerWithOutput creates a Logger writing to the given output
func NewLoggerWithOutput(name string, level hclog.Level, output io.Writer) Logger {
	return &hclogLogger{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   name,
			Level:  level,
			Output: output,
		}),
	}
}

// NewNopLogger creates a Logger that discards all output
func NewNopLogger() Logger {
	return &hclogLogger{logger: hclog.NewNullLogger()}
}

func flatten(fields []Fields) []any {
	var args []any
	for _, f := range fields {
		for k, v := range f {
			args = append(args, k, v)
		}
	}
	return args
}

func (l *hclogLogger) Debug(msg string, fields ...Fields) {
	l.logger.Debug(msg, flatten(fields)...)
}

func (l *hclogLogger) Info(msg string, fields ...Fields) {
	l.logger.Info(msg, flatten(fields)...)
}

func (l *hclogLogger) Warn(msg string, fields ...Fields) {
	l.logger.Warn(msg, flatten(fields)...)
}

func (l *hclogLogger) Error(err error, msg string, fields ...Fields) {
	args := flatten(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.logger.Error(msg, args...)
}

func (l *hclogLogger) WithFields(fields Fields) Logger {
	return &hclogLogger{logger: l.logger.With(flatten([]Fields{fields})...)}
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewLogger("m3u8", hclog.Warn)
)

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger replaces the process-wide logger
func SetGlobalLogger(logger Logger) {
	if logger == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Debug logs at debug level using the global logger
func Debug(msg string, fields ...Fields) {
	GetGlobalLogger().Debug(msg, fields...)
}

// Info logs at info level using the global logger
func Info(msg string, fields ...Fields) {
	GetGlobalLogger().Info(msg, fields...)
}

// Warn logs at warn level using the global logger
func Warn(msg string, fields ...Fields) {
	GetGlobalLogger().Warn(msg, fields...)
}

// Error logs an error using the global logger
func Error(err error, msg string, fields ...Fields) {
	GetGlobalLogger().Error(err, msg, fields...)
}

// WithFields returns a child of the global logger with fields attached
func WithFields(fields Fields) Logger {
	return GetGlobalLogger().WithFields(fields)
}
