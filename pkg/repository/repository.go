// Package repository holds the merged view of one or more Debian package indices.
package repository

import (
	"sort"

	"github.com/glorpus-work/fetchy/pkg/version"
)

// Repository maps package names to packages. It only grows; there is no removal.
type Repository struct {
	packages map[string]*Package
}

// New returns an empty repository.
func New() *Repository {
	return &Repository{packages: make(map[string]*Package)}
}

// Add registers pkg. An existing package with the same name is replaced only
// when pkg carries a strictly newer upstream version. Add reports whether pkg was stored.
func (r *Repository) Add(pkg *Package) bool {
	if pkg == nil || pkg.Name == "" {
		return false
	}
	if existing, ok := r.packages[pkg.Name]; ok {
		if version.CompareFragment(pkg.Version.Upstream, existing.Version.Upstream) <= 0 {
			return false
		}
	}
	r.packages[pkg.Name] = pkg
	return true
}

// Merge adds every package of other, in name order.
func (r *Repository) Merge(other *Repository) {
	if other.IsEmpty() {
		return
	}
	for _, name := range other.Names() {
		r.Add(other.packages[name])
	}
}

// IsEmpty reports whether the repository holds no packages.
func (r *Repository) IsEmpty() bool {
	return r == nil || len(r.packages) == 0
}

// Len returns the number of packages.
func (r *Repository) Len() int {
	if r == nil {
		return 0
	}
	return len(r.packages)
}

// Get returns the package registered under name.
func (r *Repository) Get(name string) (*Package, bool) {
	if r == nil {
		return nil, false
	}
	pkg, ok := r.packages[name]
	return pkg, ok
}

// Contains reports whether name is registered.
func (r *Repository) Contains(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all package names, sorted.
func (r *Repository) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.packages))
	for name := range r.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
