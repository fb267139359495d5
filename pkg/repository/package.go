package repository

import (
	"math"

	"github.com/glorpus-work/fetchy/pkg/dependency"
	"github.com/glorpus-work/fetchy/pkg/version"
)

// UnknownInstalledSize is used when a stanza has no Installed-Size, so unknown packages sort last.
const UnknownInstalledSize uint64 = math.MaxUint64

// Package is one binary package as described by an index stanza.
type Package struct {
	Name         string
	Version      version.Version
	Architecture string
	// Origin is the mirror base URL the package was indexed from.
	Origin        string
	InstalledSize uint64
	Depends       []dependency.Dependency
	PreDepends    []dependency.Dependency
	Filename      string
	// SHA256 is the hex digest of the .deb, empty when the index has none.
	SHA256        string
	Provides      []string
}

// DownloadURL returns Origin+Filename, or Origin+"name-version" when the stanza had no Filename.
func (p *Package) DownloadURL() string {
	if p.Filename != "" {
		return p.Origin + p.Filename
	}
	return p.Origin + p.Name + "-" + p.Version.String()
}

// Dependencies returns pre-dependencies followed by ordinary dependencies.
func (p *Package) Dependencies() []dependency.Dependency {
	all := make([]dependency.Dependency, 0, len(p.PreDepends)+len(p.Depends))
	all = append(all, p.PreDepends...)
	return append(all, p.Depends...)
}
