package cache

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/fetchy/internal/logger"
)

// Operation renders cache maintenance results for the command line.
type Operation struct {
	manager Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager Manager) *Operation {
	return &Operation{manager: manager}
}

// Clean cleans the selected buckets and describes what was freed.
func (op *Operation) Clean(all, indexes, packages bool) (string, error) {
	options := CleanOptions{All: all, Indexes: indexes, Packages: packages}
	logger.Debug("Cleaning cache", logger.Fields{
		"all":      options.All,
		"indexes":  options.Indexes,
		"packages": options.Packages,
	})

	result, err := op.manager.Clean(options)
	if err != nil {
		return "", fmt.Errorf("failed to clean cache: %w", err)
	}
	if result.TotalFreed == 0 {
		return "No files were removed from the cache.", nil
	}

	msg := fmt.Sprintf("Successfully cleaned cache. Freed %s of disk space.", formatBytes(result.TotalFreed))
	if result.IndexFreed > 0 {
		msg += fmt.Sprintf("\n- Indexes: %s", formatBytes(result.IndexFreed))
	}
	if result.PackageFreed > 0 {
		msg += fmt.Sprintf("\n- Packages: %s", formatBytes(result.PackageFreed))
	}
	return msg, nil
}

// GetInfo returns a human readable cache summary.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("failed to get cache info: %w", err)
	}

	lastCleaned := "never"
	if !info.LastCleaned.IsZero() {
		lastCleaned = fmt.Sprintf("%s (%s)", info.LastCleaned.Format(time.RFC1123), humanize.Time(info.LastCleaned))
	}

	return fmt.Sprintf(`Cache Information:
  Directory:    %s
  Total Size:   %s
  Indexes:      %s (%d files)
  Packages:     %s (%d files)
  Last Cleaned: %s`,
		info.Directory,
		formatBytes(info.TotalSize),
		formatBytes(info.IndexSize),
		info.IndexFiles,
		formatBytes(info.PackageSize),
		info.PackageFiles,
		lastCleaned,
	), nil
}

// GetDirectory returns the cache directory path.
func (op *Operation) GetDirectory() string {
	return op.manager.GetDirectory()
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
