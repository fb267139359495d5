// Package config loads and validates the fetchy configuration: which
// distribution release to resolve against, which packages to materialize and
// the settings for the cache and the network.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/glorpus-work/fetchy/pkg/errors"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
	"github.com/glorpus-work/fetchy/pkg/platform"
	"github.com/glorpus-work/fetchy/pkg/source"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Distribution string   `yaml:"distribution"`
	Codename     string   `yaml:"codename"`
	Architecture string   `yaml:"architecture"`
	Locale       string   `yaml:"locale,omitempty"`
	Mirror       string   `yaml:"mirror,omitempty"`
	Components   []string `yaml:"components,omitempty"`
	Updates      []string `yaml:"updates,omitempty"`
	PPAs         []string `yaml:"ppas,omitempty"`

	// IndexCompression selects Packages.gz, Packages.xz or plain Packages.
	IndexCompression string `yaml:"index_compression,omitempty"`

	Packages []string `yaml:"packages,omitempty"`
	// Exclude holds package names and paths to .txt files listing more names.
	Exclude []string `yaml:"exclude,omitempty"`
	// Hooks maps a hook type to the .tengo scripts run for it.
	Hooks map[string][]string `yaml:"hooks,omitempty"`

	Settings Settings `yaml:"settings"`

	// directory of the file the config was loaded from
	baseDir string
}

// Settings represents general application settings.
type Settings struct {
	CacheDir string `yaml:"cache_dir,omitempty"`

	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	HTTPRetries   int           `yaml:"http_retries"`
	MaxConcurrent int           `yaml:"max_concurrent"`

	LogLevel string `yaml:"log_level"`

	// Strict turns unresolved dependencies into an error.
	Strict bool `yaml:"strict"`
	// BootstrapShell is recorded as installed instead of unpacked.
	BootstrapShell string `yaml:"bootstrap_shell"`
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultHTTPRetries is how often a failed request is retried.
	DefaultHTTPRetries = 3

	// DefaultMaxConcurrent is the default number of parallel downloads.
	DefaultMaxConcurrent = 4

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultBootstrapShell is the package treated as configured.
	DefaultBootstrapShell = "dash"

	// ConfigFileName is the name of the config file inside the config directory.
	ConfigFileName = "config.yaml"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns a configuration for the host's distribution release.
func DefaultConfig() *Config {
	host := platform.Detect()

	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = filepath.Join(os.TempDir(), fsutil.AppName)
	}

	return &Config{
		Distribution:     host.Distribution,
		Codename:         host.Codename,
		Architecture:     host.Arch,
		IndexCompression: source.CompressionGzip,
		Settings: Settings{
			CacheDir:       cacheDir,
			HTTPTimeout:    DefaultHTTPTimeout,
			HTTPRetries:    DefaultHTTPRetries,
			MaxConcurrent:  DefaultMaxConcurrent,
			LogLevel:       DefaultLogLevel,
			BootstrapShell: DefaultBootstrapShell,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfigPath, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.baseDir = filepath.Dir(absPath)
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	cfg, err := LoadConfigFromReader(file)
	if err != nil {
		return nil, err
	}
	cfg.baseDir = filepath.Dir(absPath)
	return cfg, nil
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigParse, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}

	return &config, nil
}

// SaveConfig writes the configuration to path, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfigPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigDirectory, err)
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfigFileCreate, err)
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: %w", errors.ErrConfigEncode, err)
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: %w", errors.ErrConfigFileRename, err)
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigMarshal, err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := c.Platform().Validate(); err != nil {
		return err
	}
	if _, err := source.IndexFile(c.IndexCompression); err != nil {
		return err
	}
	for _, ppa := range c.PPAs {
		if _, err := source.PPAMirror(ppa); err != nil {
			return err
		}
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if s.MaxConcurrent < 1 {
		return errors.ErrMaxConcurrent
	}
	if !slices.Contains(validLogLevels, strings.ToLower(s.LogLevel)) {
		return fmt.Errorf("%w: %q (valid: %s)", errors.ErrInvalidLogLevel, s.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return nil
}

// Platform returns the configured distribution release.
func (c *Config) Platform() platform.Platform {
	return platform.Platform{
		Distribution: strings.ToLower(c.Distribution),
		Codename:     strings.ToLower(c.Codename),
		Arch:         c.Architecture,
	}
}

// SourceConfig returns the parameters for building the package sources.
func (c *Config) SourceConfig() source.Config {
	p := c.Platform()
	return source.Config{
		Distribution: p.Distribution,
		Codename:     p.Codename,
		Architecture: p.Arch,
		Locale:       c.Locale,
		Mirror:       c.Mirror,
		Components:   c.Components,
		Updates:      c.Updates,
		PPAs:         c.PPAs,
		Compression:  c.IndexCompression,
	}
}

// Exclusions expands Exclude into package names. Relative .txt paths are
// resolved against the directory of the loaded config file.
func (c *Config) Exclusions() ([]string, error) {
	return ReadExclusions(c.Exclude, c.baseDir)
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// GetCacheDir returns the base cache directory from settings.
func (c *Config) GetCacheDir() string {
	return c.Settings.CacheDir
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Distribution == "" {
		c.Distribution = defaults.Distribution
		if c.Codename == "" {
			c.Codename = defaults.Codename
		}
	}
	if c.Codename == "" && strings.EqualFold(c.Distribution, defaults.Distribution) {
		c.Codename = defaults.Codename
	}
	if c.Architecture == "" {
		c.Architecture = defaults.Architecture
	} else {
		c.Architecture = platform.DebianArch(c.Architecture)
	}
	if c.IndexCompression == "" {
		c.IndexCompression = defaults.IndexCompression
	}

	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.HTTPRetries == 0 {
		c.Settings.HTTPRetries = defaults.Settings.HTTPRetries
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = defaults.Settings.MaxConcurrent
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.BootstrapShell == "" {
		c.Settings.BootstrapShell = defaults.Settings.BootstrapShell
	}
}

// BaseDir returns the directory of the loaded config file, against which
// relative hook and exclusion paths are resolved.
func (c *Config) BaseDir() string {
	return c.baseDir
}
