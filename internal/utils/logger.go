// Package utils provides common utilities shared across packages
package utils

// Logger is the printf-style logging interface accepted by every package
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything
type NoopLogger struct{}

func (l NoopLogger) Debug(format string, args ...interface{}) {}
func (l NoopLogger) Info(format string, args ...interface{})  {}
func (l NoopLogger) Warn(format string, args ...interface{})  {}
func (l NoopLogger) Error(format string, args ...interface{}) {}

// OrNoop returns logger, or a NoopLogger when logger is nil
func OrNoop(logger Logger) Logger {
	if logger == nil {
		return &NoopLogger{}
	}
	return logger
}
