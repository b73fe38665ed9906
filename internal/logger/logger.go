// Package logger provides structured, level-gated logging for witnessgen.
//
// Every entry carries a "module" field naming the component that emitted it;
// entries written through the leveled methods (Info, Errorf, ...) also carry
// an "action" field naming the specific operation, on top of whatever the
// caller's message and format args carry:
//
//	log := logger.New("MANIFEST", cfg.LogLevel)
//	log.Info("decode", "validated request/response manifest")
//	log.Errorf("digest", "poseidon digest failed: %v", err)
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a log severity, re-exported from logrus so callers never need to
// import it directly.
type Level = logrus.Level

// Log severity constants, ordered lowest to highest.
const (
	LevelDebug = logrus.DebugLevel
	LevelInfo  = logrus.InfoLevel
	LevelWarn  = logrus.WarnLevel
	LevelError = logrus.ErrorLevel
)

// Logger writes structured log entries tagged with a fixed module name.
type Logger struct {
	module string
	base   *logrus.Logger
	entry  *logrus.Entry
}

// New creates a Logger for the given module, gated at the given level
// string. Unrecognized level strings default to "info".
func New(module, levelStr string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	base.SetLevel(parseLevel(levelStr))

	upper := strings.ToUpper(module)
	return &Logger{
		module: upper,
		base:   base,
		entry:  base.WithField("module", upper),
	}
}

// SetOutput redirects where log lines are written. Primarily for tests.
func (l *Logger) SetOutput(w io.Writer) { l.base.SetOutput(w) }

// SetLevel changes the minimum log level at runtime.
func (l *Logger) SetLevel(levelStr string) { l.base.SetLevel(parseLevel(levelStr)) }

func (l *Logger) withAction(action string) *logrus.Entry {
	return l.entry.WithField("action", action)
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(action, msg string) { l.withAction(action).Debug(msg) }

// Info logs at INFO level.
func (l *Logger) Info(action, msg string) { l.withAction(action).Info(msg) }

// Warn logs at WARN level.
func (l *Logger) Warn(action, msg string) { l.withAction(action).Warn(msg) }

// Error logs at ERROR level.
func (l *Logger) Error(action, msg string) { l.withAction(action).Error(msg) }

// Debugf logs a formatted message at DEBUG level.
func (l *Logger) Debugf(action, format string, args ...any) {
	l.withAction(action).Debugf(format, args...)
}

// Infof logs a formatted message at INFO level.
func (l *Logger) Infof(action, format string, args ...any) {
	l.withAction(action).Infof(format, args...)
}

// Warnf logs a formatted message at WARN level.
func (l *Logger) Warnf(action, format string, args ...any) {
	l.withAction(action).Warnf(format, args...)
}

// Errorf logs a formatted message at ERROR level.
func (l *Logger) Errorf(action, format string, args ...any) {
	l.withAction(action).Errorf(format, args...)
}

// Fatal logs at FATAL level and then calls os.Exit(1).
func (l *Logger) Fatal(action, msg string) { l.withAction(action).Fatal(msg) }

// Fatalf logs a formatted message at FATAL level and then calls os.Exit(1).
func (l *Logger) Fatalf(action, format string, args ...any) {
	l.withAction(action).Fatalf(format, args...)
}

// WithField returns a logrus entry carrying an extra structured field,
// tagged with this logger's module. Useful when a caller wants to attach
// request-scoped data (a manifest digest, a cache key) beyond action/message.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.entry.WithField(key, value)
}

func parseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
