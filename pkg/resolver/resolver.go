// Package resolver computes the dependency closure of requested packages.
package resolver

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/dependency"
	"github.com/glorpus-work/fetchy/pkg/repository"
)

// Options control resolution.
type Options struct {
	// Strict turns unresolved dependencies into ErrUnresolvedDependency instead of skipping them.
	Strict bool
}

// Resolver walks a repository's dependency graph.
type Resolver struct {
	repo *repository.Repository
	opts Options
}

// New creates a resolver over repo.
func New(repo *repository.Repository, opts Options) *Resolver {
	return &Resolver{repo: repo, opts: opts}
}

// frame is one package on the explicit DFS stack.
type frame struct {
	pkg  *repository.Package
	deps []dependency.Dependency
	next int
}

type walk struct {
	r          *Resolver
	excludes   map[string]struct{}
	visited    map[string]struct{}
	stack      []*frame
	closure    *Closure
	unresolved map[string]struct{}
}

// Resolve returns the closure of names. Excluded names are never visited, so
// they contribute none of their own dependencies. Pre-dependencies are walked
// before ordinary dependencies, and a package is emitted after its dependencies.
func (r *Resolver) Resolve(names []string, excludes []string) (*Closure, error) {
	if len(names) == 0 {
		return nil, ErrNoPackages
	}

	w := &walk{
		r:          r,
		excludes:   make(map[string]struct{}, len(excludes)),
		visited:    make(map[string]struct{}),
		closure:    newClosure(),
		unresolved: make(map[string]struct{}),
	}
	for _, e := range excludes {
		w.excludes[e] = struct{}{}
	}

	for _, name := range names {
		w.enter(name)
		w.drain()
	}

	if len(w.closure.Unresolved) > 0 {
		logger.Warn("Unresolved dependencies", logger.Fields{"count": len(w.closure.Unresolved), "names": strings.Join(w.closure.Unresolved, ", ")})
		if r.opts.Strict {
			return w.closure, fmt.Errorf("%w: %s", ErrUnresolvedDependency, strings.Join(w.closure.Unresolved, ", "))
		}
	}
	return w.closure, nil
}

func (w *walk) enter(name string) {
	if name == "" {
		return
	}
	if _, ok := w.visited[name]; ok {
		return
	}
	w.visited[name] = struct{}{}

	if _, ok := w.excludes[name]; ok {
		logger.Debug("Excluding package", logger.Fields{"package": name})
		return
	}

	pkg, ok := w.r.repo.Get(name)
	if !ok {
		w.miss(name)
		return
	}
	w.stack = append(w.stack, &frame{pkg: pkg, deps: pkg.Dependencies()})
}

func (w *walk) drain() {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		if top.next < len(top.deps) {
			dep := top.deps[top.next]
			top.next++
			candidate, ok := w.r.BestCandidate(dep.Resolve())
			if !ok {
				w.miss(dep.String())
				continue
			}
			w.enter(candidate)
			continue
		}
		w.stack = w.stack[:len(w.stack)-1]
		w.closure.add(top.pkg)
	}
}

func (w *walk) miss(what string) {
	if _, ok := w.unresolved[what]; ok {
		return
	}
	w.unresolved[what] = struct{}{}
	w.closure.Unresolved = append(w.closure.Unresolved, what)
}

// BestCandidate picks, among names present in the repository, the one with
// the smallest installed size. Ties go to the first listed name.
func (r *Resolver) BestCandidate(names []string) (string, bool) {
	best := ""
	var bestSize uint64
	found := false
	for _, name := range names {
		pkg, ok := r.repo.Get(name)
		if !ok {
			continue
		}
		if !found || pkg.InstalledSize < bestSize {
			best, bestSize, found = name, pkg.InstalledSize, true
		}
	}
	return best, found
}
