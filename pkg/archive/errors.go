package archive

import "errors"

var (
	// ErrMemberNotFound is returned when a .deb lacks its control or data member.
	ErrMemberNotFound = errors.New("archive member not found")
	// ErrCorrupt wraps failures of the outer ar container.
	ErrCorrupt = errors.New("corrupt deb archive")
	// ErrUnknownFormat is returned when an inner member is not a tar stream.
	ErrUnknownFormat = errors.New("unsupported archive format")
)

// ErrUnsafePath is returned for entries whose names leave the extraction root.
var ErrUnsafePath = errors.New("archive entry escapes root")
