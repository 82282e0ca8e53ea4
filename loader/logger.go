package loader

import (
	"go.uber.org/zap"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for per-batch and per-item detail.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for progress messages.
	LogLevelInfo
	// LogLevelWarn is for situations that may need attention.
	LogLevelWarn
	// LogLevelError is for failures the Loader recovered from.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger receives log messages from a Loader and its processors. Messages
// are formatted with fmt.Sprintf semantics.
type Logger interface {
	Log(level LogLevel, format string, args ...interface{})
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoOpLogger discards all messages. It is the default Logger.
type NoOpLogger struct{}

// Log implements the Logger interface.
func (n *NoOpLogger) Log(level LogLevel, format string, args ...interface{}) {}

// Debug implements the Logger interface.
func (n *NoOpLogger) Debug(format string, args ...interface{}) {}

// Info implements the Logger interface.
func (n *NoOpLogger) Info(format string, args ...interface{}) {}

// Warn implements the Logger interface.
func (n *NoOpLogger) Warn(format string, args ...interface{}) {}

// Error implements the Logger interface.
func (n *NoOpLogger) Error(format string, args ...interface{}) {}

// ZapLogger sends messages to a zap logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger returns a Logger writing to l. A nil l yields a logger that
// discards everything.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{sugar: l.Sugar()}
}

// Log implements the Logger interface.
func (z *ZapLogger) Log(level LogLevel, format string, args ...interface{}) {
	switch level {
	case LogLevelDebug:
		z.sugar.Debugf(format, args...)
	case LogLevelInfo:
		z.sugar.Infof(format, args...)
	case LogLevelWarn:
		z.sugar.Warnf(format, args...)
	default:
		z.sugar.Errorf(format, args...)
	}
}

// Debug implements the Logger interface.
func (z *ZapLogger) Debug(format string, args ...interface{}) {
	z.Log(LogLevelDebug, format, args...)
}

// Info implements the Logger interface.
func (z *ZapLogger) Info(format string, args ...interface{}) {
	z.Log(LogLevelInfo, format, args...)
}

// Warn implements the Logger interface.
func (z *ZapLogger) Warn(format string, args ...interface{}) {
	z.Log(LogLevelWarn, format, args...)
}

// Error implements the Logger interface.
func (z *ZapLogger) Error(format string, args ...interface{}) {
	z.Log(LogLevelError, format, args...)
}
