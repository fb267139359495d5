package orchestrator

import "errors"

var (
	// ErrPackageNotFound is returned when a requested package is in none of the sources.
	ErrPackageNotFound = errors.New("package not found")

	// ErrNotConfigured is returned when a required collaborator is missing.
	ErrNotConfigured = errors.New("orchestrator is not configured")
)
