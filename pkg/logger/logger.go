package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// Init initializes the logger with proper configuration
func Init() {
	log = logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	// Set formatter for structured logging
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

func parseLevel(value string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	if log == nil {
		Init()
	}
	return log
}

// SetOutput redirects log output, mostly useful for CLI runs and tests
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// SetVerbose switches between debug and the configured level
func SetVerbose(verbose bool) {
	if verbose {
		GetLogger().SetLevel(logrus.DebugLevel)
	}
}

// ForRun returns an entry scoped to one aggregation run
func ForRun(runID string) *logrus.Entry {
	return GetLogger().WithField("run_id", runID)
}

// WithField adds a field to the logger
func WithField(key string, value interface{}) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

// WithFields adds multiple fields to the logger
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// WithError adds an error field to the logger
func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}

func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

// Fatalf logs a formatted fatal message and exits
func Fatalf(format string, args ...interface{}) {
	GetLogger().Fatalf(format, args...)
}
