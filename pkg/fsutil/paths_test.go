package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCacheDir(t *testing.T) {
	t.Run("xdg cache home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
		dir, err := GetCacheDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg-cache", "fetchy"), dir)
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", "/home/builder")
		dir, err := GetCacheDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/builder", ".cache", "fetchy"), dir)
	})
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg-test")
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/etc/xdg-test", "fetchy"), dir)
}

func TestWithinRoot(t *testing.T) {
	root := "/srv/rootfs"
	tests := []struct {
		name   string
		entry  string
		want   string
		inside bool
	}{
		{"plain relative", "usr/bin/foo", "/srv/rootfs/usr/bin/foo", true},
		{"dot slash prefix", "./etc/passwd", "/srv/rootfs/etc/passwd", true},
		{"root itself", "./", "/srv/rootfs", true},
		{"absolute is rebased", "/usr/lib", "/srv/rootfs/usr/lib", true},
		{"parent escape", "../etc/shadow", "", false},
		{"nested escape", "usr/../../x", "", false},
		{"dotdot prefixed name is fine", "..data/file", "/srv/rootfs/..data/file", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WithinRoot(root, tt.entry)
			assert.Equal(t, tt.inside, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
