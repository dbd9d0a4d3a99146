package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Fields carries structured key/value context for log entries.
type Fields map[string]any

// Logger is the logging interface used throughout the extraction
// pipeline. It is satisfied by the logrus-backed default logger and by
// test doubles.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger returns a logger writing text to stderr at info level.
func NewDefaultLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// NewLogger returns a logger at the given level (debug, info, warn, error).
// Unknown levels fall back to info.
func NewLogger(level string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// WithFields returns a default logger pre-populated with fields.
func WithFields(fields Fields) Logger {
	return NewDefaultLogger().WithFields(fields)
}

func (l *logrusLogger) log(level logrus.Level, msg string, fields []Fields) {
	entry := l.entry
	for _, f := range fields {
		entry = entry.WithFields(logrus.Fields(f))
	}
	entry.Log(level, msg)
}

func (l *logrusLogger) Debug(msg string, fields ...Fields) {
	l.log(logrus.DebugLevel, msg, fields)
}

func (l *logrusLogger) Info(msg string, fields ...Fields) {
	l.log(logrus.InfoLevel, msg, fields)
}

func (l *logrusLogger) Warn(msg string, fields ...Fields) {
	l.log(logrus.WarnLevel, msg, fields)
}

func (l *logrusLogger) Error(msg string, fields ...Fields) {
	l.log(logrus.ErrorLevel, msg, fields)
}

func (l *logrusLogger) WithFields(fields Fields) Logger {
	return &logrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}
