package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
)

// Bucket separates cached parsed indexes from cached package archives.
type Bucket string

const (
	Indexes  Bucket = "indexes"
	Packages Bucket = "packages"
)

// KeyLength is the number of hex characters in a key.
const KeyLength = 32

// Key derives a cache key from the concatenation of parts: the first 32 hex
// characters of their SHA-256 digest.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))[:KeyLength]
}

// Store is a directory of keyed blobs split into buckets. A missing entry is
// a cache miss, never an error.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Nothing is created until Put.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the cache root.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing key in bucket.
func (s *Store) Path(bucket Bucket, key string) (string, error) {
	if bucket != Indexes && bucket != Packages {
		return "", fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if !validKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, string(bucket), key), nil
}

// Has reports whether key is cached in bucket.
func (s *Store) Has(bucket Bucket, key string) bool {
	path, err := s.Path(bucket, key)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Get returns the cached bytes. ok is false on a miss.
func (s *Store) Get(bucket Bucket, key string) (data []byte, ok bool, err error) {
	path, err := s.Path(bucket, key)
	if err != nil {
		return nil, false, err
	}
	data, err = os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("Cache miss", logger.Fields{"bucket": bucket, "key": key})
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	logger.Debug("Cache hit", logger.Fields{"bucket": bucket, "key": key})
	return data, true, nil
}

// Put stores data under key, replacing any previous entry atomically.
func (s *Store) Put(bucket Bucket, key string, data []byte) error {
	path, err := s.Path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirModePrivate); err != nil {
		return fmt.Errorf("failed to create cache bucket %s: %w", bucket, err)
	}
	return fsutil.WriteFileAtomic(path, data, fsutil.FileModeSecure)
}

func validKey(key string) bool {
	if len(key) != KeyLength {
		return false
	}
	for _, c := range key {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
