package resolver

import "github.com/glorpus-work/fetchy/pkg/repository"

// Closure is the ordered result of a resolution. Every package appears after
// the packages it depends on, unless a dependency cycle forbids it.
type Closure struct {
	packages []*repository.Package
	index    map[string]int

	// Unresolved lists requested names and dependency clauses that had no
	// candidate in the repository, in first-seen order.
	Unresolved []string
}

func newClosure() *Closure {
	return &Closure{index: make(map[string]int)}
}

func (c *Closure) add(pkg *repository.Package) {
	if _, ok := c.index[pkg.Name]; ok {
		return
	}
	c.index[pkg.Name] = len(c.packages)
	c.packages = append(c.packages, pkg)
}

// Packages returns the packages in unpack order.
func (c *Closure) Packages() []*repository.Package {
	return c.packages
}

// Names returns the package names in unpack order.
func (c *Closure) Names() []string {
	names := make([]string, 0, len(c.packages))
	for _, p := range c.packages {
		names = append(names, p.Name)
	}
	return names
}

// Get returns the package named name if it is part of the closure.
func (c *Closure) Get(name string) (*repository.Package, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.packages[i], true
}

// Len returns the number of packages in the closure.
func (c *Closure) Len() int {
	return len(c.packages)
}
