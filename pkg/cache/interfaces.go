package cache

import "time"

// Manager defines cache maintenance operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
}

// CleanOptions selects the buckets to empty. With nothing selected, all are cleaned.
type CleanOptions struct {
	All      bool
	Indexes  bool
	Packages bool
}

// CleanResult contains the bytes freed per bucket.
type CleanResult struct {
	TotalFreed   int64
	IndexFreed   int64
	PackageFreed int64
}

// Info describes the cache contents.
type Info struct {
	Directory    string
	TotalSize    int64
	IndexSize    int64
	IndexFiles   int
	PackageSize  int64
	PackageFiles int
	// LastCleaned is zero when the cache was never cleaned.
	LastCleaned time.Time
}
