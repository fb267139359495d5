package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to replace config file")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config")
	ErrConfigFileExists  = fmt.Errorf("config file already exists")

	// Validation errors.
	ErrValidation          = fmt.Errorf("validation failed")
	ErrUnknownDistribution = fmt.Errorf("unknown distribution")
	ErrUnknownCodename     = fmt.Errorf("unknown codename")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")
	ErrHTTPTimeoutNegative = fmt.Errorf("http timeout cannot be negative")
	ErrMaxConcurrent       = fmt.Errorf("max concurrent must be at least 1")
	ErrExclusionFile       = fmt.Errorf("failed to read exclusion file")

	// Filesystem errors.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// Network errors.
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")

	// Cache errors.
	ErrCacheClean     = fmt.Errorf("failed to clean cache")
	ErrCacheInfo      = fmt.Errorf("failed to get cache info")
	ErrCacheDirectory = fmt.Errorf("cache directory cannot be empty")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
