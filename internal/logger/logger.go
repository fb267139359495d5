package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// OutputFormat selects the log line encoding.
type OutputFormat string

// Supported output formats.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Fields is a type alias for log fields to make the API cleaner
type Fields = logrus.Fields

var (
	// testOutput is used to capture log output during tests
	testOutput   io.Writer
	testOutputMu sync.Mutex

	logger *logrus.Logger
)

// SetTestOutput sets the output writer for testing purposes
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput resets the test output to nil
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	return os.Stderr
}

// InitLogger initializes the global logger for CLI operations
func InitLogger(logLevel string, noColor bool) {
	InitLoggerWithFormat(logLevel, noColor, FormatText)
}

// InitLoggerWithFormat initializes the global logger with an explicit output format.
func InitLoggerWithFormat(logLevel string, noColor bool, format OutputFormat) {
	logger = logrus.New()
	logger.SetOutput(getOutput())

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(newFormatter(noColor, format))
}

func newFormatter(noColor bool, format OutputFormat) logrus.Formatter {
	if format == FormatJSON {
		return &logrus.JSONFormatter{}
	}
	if noColor {
		return &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}
	}
	return &logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: false,
	}
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	if logger == nil {
		InitLogger("info", true)
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Info(msg)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	GetLogger().Info(fmt.Sprintf(format, args...))
}

// Debug logs a debug message (only shown when debug level is enabled)
func Debug(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Debug(msg)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	GetLogger().Debug(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func Warn(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Warn(msg)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...interface{}) {
	GetLogger().Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func Error(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Error(msg)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...interface{}) {
	GetLogger().Error(fmt.Sprintf(format, args...))
}

// Success logs a success message as info with success indicator
func Success(msg string, fields ...Fields) {
	merged := mergeFields(fields...)
	merged["status"] = "success"
	GetLogger().WithFields(merged).Info(msg)
}

// mergeFields merges multiple field maps into one
func mergeFields(fields ...Fields) Fields {
	result := make(Fields)
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}
