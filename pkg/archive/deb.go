// Package archive reads Debian binary packages: the outer ar container and
// the (optionally compressed) tar members inside it.
package archive

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blakesmith/ar"
)

// Member name prefixes inside a .deb.
const (
	ControlPrefix = "control.tar"
	DataPrefix    = "data.tar"
)

// MemberFunc receives one ar member. The reader is only valid for the
// duration of the call.
type MemberFunc func(name string, r io.Reader) error

// WalkDeb calls fn for every member of the ar container read from r, in
// archive order.
func WalkDeb(r io.Reader, fn MemberFunc) error {
	rd := ar.NewReader(r)
	for {
		hdr, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		name := strings.TrimSuffix(strings.TrimSpace(hdr.Name), "/")
		if err := fn(name, io.LimitReader(rd, hdr.Size)); err != nil {
			return err
		}
	}
}

// Deb dispatches the control and data members of a package to their
// handlers. Both members must be present.
type Deb struct {
	Control MemberFunc
	Data    MemberFunc
}

// Walk reads the package from r.
func (d Deb) Walk(r io.Reader) error {
	var sawControl, sawData bool
	err := WalkDeb(r, func(name string, member io.Reader) error {
		switch {
		case strings.HasPrefix(name, ControlPrefix):
			sawControl = true
			if d.Control != nil {
				return d.Control(name, member)
			}
		case strings.HasPrefix(name, DataPrefix):
			sawData = true
			if d.Data != nil {
				return d.Data(name, member)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !sawControl {
		return fmt.Errorf("%w: %s*", ErrMemberNotFound, ControlPrefix)
	}
	if !sawData {
		return fmt.Errorf("%w: %s*", ErrMemberNotFound, DataPrefix)
	}
	return nil
}
