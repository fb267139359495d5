//go:generate mockgen -destination=./mocks/download.go . Manager

package download

import (
	"context"
	"io"
	"net/url"
)

// Manager downloads remote files (package archives, index files) into a directory.
type Manager interface {
	// FetchAll downloads all items, respecting Options. Items sharing a URL
	// are fetched once. It returns a map from Item.ID to absolute local file path.
	FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error)

	// Fetch downloads a single item into opts.Dir and returns the absolute local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)

	// Open streams the body of u.
	Open(ctx context.Context, u *url.URL) (io.ReadCloser, error)
}

// Item represents one remote resource to download.
type Item struct {
	ID       string   // stable identifier, unique within a batch
	URL      *url.URL // source URL
	Checksum string   // optional hex SHA-256, verified when set
	Filename string   // optional file name; defaults to the cache key of the URL
}

// Options control the behavior of the download manager.
type Options struct {
	Dir         string // destination directory, must be absolute
	Concurrency int    // parallel downloads; <=0 picks a default
}
