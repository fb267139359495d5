package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application used in paths
	AppName = "fetchy"
)

// GetCacheDir returns the cache directory for the application.
// $XDG_CACHE_HOME/fetchy when set, ~/.cache/fetchy otherwise.
func GetCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// GetConfigDir returns the configuration directory for the application.
// $XDG_CONFIG_HOME/fetchy when set, ~/.config/fetchy otherwise.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// WithinRoot joins name onto root and reports whether the result stays inside root.
func WithinRoot(root, name string) (string, bool) {
	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || (len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

// JoinSlash joins a slash separated relative path onto root.
func JoinSlash(root, slashPath string) string {
	return filepath.Join(root, filepath.FromSlash(slashPath))
}
