// Package version implements Debian package version strings of the form
// [epoch:]upstream[-revision] and their total ordering.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRevision is used when a version string carries no revision.
const DefaultRevision = "0"

// Version is a parsed Debian version. The zero value is not a valid version.
type Version struct {
	Epoch    uint64
	Upstream string
	Revision string
}

// Parse splits s at its first ':' and last '-'.
// Missing epoch defaults to 0 and a missing revision to "0".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrParse)
	}

	v := Version{Revision: DefaultRevision}
	rest := s
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		// an empty epoch reads as 0
		if i > 0 {
			epoch, err := strconv.ParseUint(rest[:i], 10, 64)
			if err != nil {
				return Version{}, fmt.Errorf("%w: epoch %q in %q", ErrParse, rest[:i], s)
			}
			v.Epoch = epoch
		}
		rest = rest[i+1:]
	}
	if i := strings.LastIndexByte(rest, '-'); i >= 0 {
		if rev := rest[i+1:]; rev != "" {
			v.Revision = rev
		}
		rest = rest[:i]
	}
	v.Upstream = rest
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical epoch:upstream-revision form.
func (v Version) String() string {
	return strconv.FormatUint(v.Epoch, 10) + ":" + v.Upstream + "-" + v.Revision
}

// Compare returns -1, 0 or +1 when v sorts before, equal to or after o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Epoch < o.Epoch:
		return -1
	case v.Epoch > o.Epoch:
		return 1
	}
	if c := CompareFragment(v.Upstream, o.Upstream); c != 0 {
		return c
	}
	return CompareFragment(v.Revision, o.Revision)
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// Equal reports whether v and o compare equal.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }
