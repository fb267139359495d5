package source

import "errors"

var (
	// ErrUnknownDistribution is returned for distributions without a default mirror.
	ErrUnknownDistribution = errors.New("unknown distribution")
	// ErrInvalidPPA is returned for PPA references that are neither owner/name nor a URL.
	ErrInvalidPPA = errors.New("invalid PPA")
	// ErrIndexFetch wraps failures to download or decompress a package index.
	ErrIndexFetch = errors.New("failed to fetch package index")
	// ErrUnknownCompression is returned for unsupported index compressions.
	ErrUnknownCompression = errors.New("unknown index compression")
)
