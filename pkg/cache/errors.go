package cache

import "fmt"

var (
	// ErrUnknownBucket is returned for a bucket other than Indexes or Packages.
	ErrUnknownBucket = fmt.Errorf("unknown cache bucket")

	// ErrInvalidKey is returned for keys that are not lowercase hex digests.
	ErrInvalidKey = fmt.Errorf("invalid cache key")
)
