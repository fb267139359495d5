package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove_File(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "dl-123.tmp")
	dst := filepath.Join(tempDir, "packages", "0123456789abcdef")

	require.NoError(t, os.WriteFile(src, []byte("!<arch>\n"), FileModeDefault))
	require.NoError(t, Move(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "!<arch>\n", string(data))
	assert.NoFileExists(t, src)
}

func TestMove_Errors(t *testing.T) {
	tempDir := t.TempDir()

	assert.Error(t, Move("", filepath.Join(tempDir, "x")))
	assert.Error(t, Move(filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "x")))
	assert.Error(t, Move(tempDir, filepath.Join(tempDir, "x")), "directories are not moved")
}

func TestCopy_PreservesMode(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "postinst")
	dst := filepath.Join(tempDir, "install.sh")

	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\nexit 0\n"), FileModeExec))
	require.NoError(t, os.Chmod(src, FileModeExec))
	require.NoError(t, Copy(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileModeExec), info.Mode().Perm())
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\nexit 0\n", string(data))
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "config.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("a: 1\n"), FileModeDefault))
	require.NoError(t, WriteFileAtomic(path, []byte("a: 2\n"), FileModeDefault))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
