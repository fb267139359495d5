package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/mholt/archives"
)

// Entry is a single tar entry.
type Entry struct {
	Header *tar.Header
	open   func() (fs.File, error)
}

// Name returns the path as stored in the archive, e.g. "./usr/bin/dash".
func (e Entry) Name() string { return e.Header.Name }

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Header.Typeflag == tar.TypeDir }

// Open returns the contents of a regular file entry.
func (e Entry) Open() (io.ReadCloser, error) {
	return e.open()
}

// EntryFunc is called for each entry of a tar stream.
type EntryFunc func(ctx context.Context, e Entry) error

// WalkTar identifies the compression of the member called name (gzip, xz,
// zstd, bzip2 or none), then calls fn for every entry of the tar inside.
func WalkTar(ctx context.Context, name string, r io.Reader, fn EntryFunc) error {
	format, stream, err := archives.Identify(ctx, name, r)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnknownFormat, name, err)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return fmt.Errorf("%w: %s is not an archive", ErrUnknownFormat, name)
	}

	return extractor.Extract(ctx, stream, func(ctx context.Context, f archives.FileInfo) error {
		hdr, ok := f.Header.(*tar.Header)
		if !ok {
			return fmt.Errorf("%w: %s is not a tar archive", ErrUnknownFormat, name)
		}
		return fn(ctx, Entry{Header: hdr, open: f.Open})
	})
}
