// Package logger provides the leveled logger used across the intake service.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry with the component name attached.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named component at the given level.
func New(name string, level logrus.Level) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{})
	return &Logger{entry: l.WithField("component", name)}
}

// NewDefault creates a logger for the named component at info level.
func NewDefault(name string) *Logger {
	return New(name, logrus.InfoLevel)
}

// WithField returns a logger with the field attached to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithError returns a logger with the error attached to every entry.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...any)  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...any) { l.entry.Error(args...) }

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
