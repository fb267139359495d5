package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Index compressions, named by file extension.
const (
	CompressionGzip = "gz"
	CompressionXZ   = "xz"
	CompressionNone = "none"
)

// IndexFile returns the Packages file name for a compression.
func IndexFile(compression string) (string, error) {
	switch compression {
	case "", CompressionGzip:
		return "Packages.gz", nil
	case CompressionXZ:
		return "Packages.xz", nil
	case CompressionNone:
		return "Packages", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCompression, compression)
}

// Decompress wraps r according to the extension of name.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case strings.HasSuffix(name, ".xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz: %w", err)
		}
		return io.NopCloser(xr), nil
	default:
		return io.NopCloser(r), nil
	}
}
