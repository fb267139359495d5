package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SettingKeys lists the keys accepted by SetValue and GetValue, in display order.
var SettingKeys = []string{
	"distribution",
	"codename",
	"architecture",
	"locale",
	"mirror",
	"index_compression",
	"cache_dir",
	"http_timeout",
	"http_retries",
	"max_concurrent",
	"log_level",
	"strict",
	"bootstrap_shell",
}

// SetValue sets a scalar configuration value by key. The result is not
// validated; call Validate before saving.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "distribution":
		c.Distribution = strings.ToLower(value)
	case "codename":
		c.Codename = strings.ToLower(value)
	case "architecture":
		c.Architecture = value
	case "locale":
		c.Locale = value
	case "mirror":
		c.Mirror = value
	case "index_compression":
		c.IndexCompression = value
	case "cache_dir":
		c.Settings.CacheDir = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %s", key, value)
		}
		c.Settings.HTTPTimeout = d
	case "http_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %s", key, value)
		}
		c.Settings.HTTPRetries = n
	case "max_concurrent":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %s", key, value)
		}
		c.Settings.MaxConcurrent = n
	case "log_level":
		c.Settings.LogLevel = value
	case "strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Settings.Strict = b
	case "bootstrap_shell":
		c.Settings.BootstrapShell = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "distribution":
		return c.Distribution, nil
	case "codename":
		return c.Codename, nil
	case "architecture":
		return c.Architecture, nil
	case "locale":
		return c.Locale, nil
	case "mirror":
		return c.Mirror, nil
	case "index_compression":
		return c.IndexCompression, nil
	case "cache_dir":
		return c.Settings.CacheDir, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "http_retries":
		return strconv.Itoa(c.Settings.HTTPRetries), nil
	case "max_concurrent":
		return strconv.Itoa(c.Settings.MaxConcurrent), nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "strict":
		return strconv.FormatBool(c.Settings.Strict), nil
	case "bootstrap_shell":
		return c.Settings.BootstrapShell, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// ToMap returns every scalar setting keyed like SettingKeys.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(SettingKeys))
	for _, key := range SettingKeys {
		// keys come from the same switch, so GetValue cannot fail here
		v, _ := c.GetValue(key)
		result[key] = v
	}
	return result
}
