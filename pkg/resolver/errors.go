package resolver

import "errors"

var (
	// ErrNoPackages is returned when Resolve is called without requested names.
	ErrNoPackages = errors.New("no packages requested")

	// ErrUnresolvedDependency is returned in strict mode when a dependency has no candidate in the repository.
	ErrUnresolvedDependency = errors.New("unresolved dependency")
)
