package materializer

import (
	"errors"
	"fmt"
)

var (
	// ErrArchive wraps every failure caused by the contents of a package archive.
	ErrArchive = errors.New("archive error")
	// ErrInfoCollision is returned when two packages write the same dpkg info file.
	ErrInfoCollision = errors.New("dpkg info file already exists")
	// ErrMissingArchive is returned when no archive path was supplied for a package.
	ErrMissingArchive = errors.New("no archive for package")
)

// PackageError identifies the package whose materialization failed.
type PackageError struct {
	Package string
	Err     error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("materialize %s: %v", e.Package, e.Err)
}

func (e *PackageError) Unwrap() error {
	return e.Err
}
