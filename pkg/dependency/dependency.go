// Package dependency parses Depends and Pre-Depends clauses of Debian control files.
package dependency

import (
	"strings"
)

// Kind tells which control field a dependency was read from.
type Kind string

// Dependency kinds.
const (
	PreDepends Kind = "Pre-Depends"
	Depends    Kind = "Depends"
)

// Dependency is either a Simple clause or an Alternative group.
type Dependency interface {
	// Resolve returns the candidate package names in source order.
	Resolve() []string
	String() string
	sealed()
}

// Simple is a single named dependency such as "libc6 (>= 2.34) [amd64]".
type Simple struct {
	Kind Kind
	Name string
	// ArchQualifier holds a multiarch suffix like "any" from "perl:any".
	ArchQualifier string
	Relationship  *Relationship
	// Condition is the raw text inside [...]; it is carried, not evaluated.
	Condition string
}

// Alternative is an "a | b | c" group; the first listed alternative is preferred on ties.
type Alternative struct {
	Kind         Kind
	Alternatives []Simple
}

func (Simple) sealed()      {}
func (Alternative) sealed() {}

// Resolve returns the package name.
func (s Simple) Resolve() []string {
	return []string{s.Name}
}

func (s Simple) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.ArchQualifier != "" {
		b.WriteByte(':')
		b.WriteString(s.ArchQualifier)
	}
	if s.Relationship != nil {
		b.WriteByte(' ')
		b.WriteString(s.Relationship.String())
	}
	if s.Condition != "" {
		b.WriteString(" [")
		b.WriteString(s.Condition)
		b.WriteByte(']')
	}
	return b.String()
}

// Resolve returns every alternative's name, in order.
func (a Alternative) Resolve() []string {
	names := make([]string, 0, len(a.Alternatives))
	for _, alt := range a.Alternatives {
		names = append(names, alt.Name)
	}
	return names
}

func (a Alternative) String() string {
	parts := make([]string, 0, len(a.Alternatives))
	for _, alt := range a.Alternatives {
		parts = append(parts, alt.String())
	}
	return strings.Join(parts, " | ")
}

// JoinList renders deps the way a control file field expects them.
func JoinList(deps []Dependency) string {
	parts := make([]string, 0, len(deps))
	for _, d := range deps {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ", ")
}
