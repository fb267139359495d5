package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/fetchy/pkg/errors"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
)

const cleanMarker = ".last-cleaned"

// DefaultManager implements Manager on top of a Store directory.
type DefaultManager struct {
	directory string
}

// NewManager creates a cache manager for directory.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{directory: directory}
}

// NewDefaultManager creates a cache manager for the user cache directory.
func NewDefaultManager() (*DefaultManager, error) {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user cache directory")
	}
	if err := os.MkdirAll(cacheDir, fsutil.DirModePrivate); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory")
	}
	return NewManager(cacheDir), nil
}

// Store returns a blob store over the managed directory.
func (cm *DefaultManager) Store() *Store {
	return NewStore(cm.directory)
}

// Clean removes cached files according to options.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	if cm.directory == "" {
		return nil, errors.ErrCacheDirectory
	}
	if !options.Indexes && !options.Packages {
		options.All = true
	}

	result := &CleanResult{}
	if options.All || options.Indexes {
		size, err := cleanDirectory(cm.bucketDir(Indexes))
		if err != nil {
			return nil, fmt.Errorf("%w: indexes: %w", errors.ErrCacheClean, err)
		}
		result.IndexFreed = size
		result.TotalFreed += size
	}
	if options.All || options.Packages {
		size, err := cleanDirectory(cm.bucketDir(Packages))
		if err != nil {
			return nil, fmt.Errorf("%w: packages: %w", errors.ErrCacheClean, err)
		}
		result.PackageFreed = size
		result.TotalFreed += size
	}

	if err := os.MkdirAll(cm.directory, fsutil.DirModePrivate); err == nil {
		_ = os.WriteFile(filepath.Join(cm.directory, cleanMarker), []byte(time.Now().UTC().Format(time.RFC3339)), fsutil.FileModeSecure)
	}
	return result, nil
}

// GetInfo returns sizes and file counts per bucket.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{Directory: cm.directory}

	indexSize, indexFiles, err := getDirSizeAndFiles(cm.bucketDir(Indexes))
	if err != nil {
		return nil, fmt.Errorf("%w: indexes: %w", errors.ErrCacheInfo, err)
	}
	info.IndexSize, info.IndexFiles = indexSize, indexFiles

	pkgSize, pkgFiles, err := getDirSizeAndFiles(cm.bucketDir(Packages))
	if err != nil {
		return nil, fmt.Errorf("%w: packages: %w", errors.ErrCacheInfo, err)
	}
	info.PackageSize, info.PackageFiles = pkgSize, pkgFiles
	info.TotalSize = info.IndexSize + info.PackageSize

	if st, err := os.Stat(filepath.Join(cm.directory, cleanMarker)); err == nil {
		info.LastCleaned = st.ModTime()
	}
	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

func (cm *DefaultManager) bucketDir(b Bucket) string {
	return filepath.Join(cm.directory, string(b))
}

// cleanDirectory empties dir and returns the bytes freed.
func cleanDirectory(dir string) (int64, error) {
	if !exists(dir) {
		return 0, nil
	}
	size, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}
	if err := os.MkdirAll(dir, fsutil.DirModePrivate); err != nil {
		return size, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}
	return size, nil
}

// getDirSizeAndFiles sums the size and count of regular files below dir.
// A missing directory is empty.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if !exists(dir) {
		return 0, 0, nil
	}
	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
