package dependency

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/version"
)

// Operator is a version relation operator.
type Operator string

// Relation operators as written in control files.
const (
	StrictlyEarlier Operator = "<<"
	EarlierOrEqual  Operator = "<="
	Equal           Operator = "="
	LaterOrEqual    Operator = ">="
	StrictlyLater   Operator = ">>"
)

// Relationship restricts a dependency to a range of versions.
type Relationship struct {
	Op      Operator
	Version version.Version
}

// ParseRelationship parses the inside of a "(op version)" span.
// Surrounding parentheses and whitespace are tolerated.
func ParseRelationship(s string) (Relationship, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "(")
	body = strings.TrimSuffix(body, ")")
	body = strings.TrimSpace(body)

	end := 0
	for end < len(body) && strings.IndexByte("<>=", body[end]) >= 0 {
		end++
	}
	op, err := parseOperator(body[:end])
	if err != nil {
		return Relationship{}, fmt.Errorf("%w: relationship %q: %w", ErrParse, s, err)
	}

	v, err := version.Parse(body[end:])
	if err != nil {
		return Relationship{}, fmt.Errorf("%w: relationship %q: %w", ErrParse, s, err)
	}
	return Relationship{Op: op, Version: v}, nil
}

func parseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case StrictlyEarlier, EarlierOrEqual, Equal, LaterOrEqual, StrictlyLater:
		return Operator(s), nil
	}
	// obsolete single-character forms, read the way dpkg reads them
	switch s {
	case "<":
		return EarlierOrEqual, nil
	case ">":
		return LaterOrEqual, nil
	}
	return "", fmt.Errorf("unknown operator %q", s)
}

// SatisfiedBy reports whether v falls inside the relationship.
func (r Relationship) SatisfiedBy(v version.Version) bool {
	c := v.Compare(r.Version)
	switch r.Op {
	case StrictlyEarlier:
		return c < 0
	case EarlierOrEqual:
		return c <= 0
	case Equal:
		return c == 0
	case LaterOrEqual:
		return c >= 0
	case StrictlyLater:
		return c > 0
	}
	return false
}

func (r Relationship) String() string {
	return "(" + string(r.Op) + " " + r.Version.String() + ")"
}
