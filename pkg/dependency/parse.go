package dependency

import (
	"fmt"
	"strings"
)

// Parse parses one comma-free clause. A clause containing '|' yields an Alternative.
func Parse(kind Kind, clause string) (Dependency, error) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil, fmt.Errorf("%w: empty clause", ErrParse)
	}

	if !strings.Contains(clause, "|") {
		s, err := parseSimple(kind, clause)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	parts := strings.Split(clause, "|")
	alt := Alternative{Kind: kind, Alternatives: make([]Simple, 0, len(parts))}
	for _, part := range parts {
		s, err := parseSimple(kind, part)
		if err != nil {
			return nil, err
		}
		alt.Alternatives = append(alt.Alternatives, s)
	}
	return alt, nil
}

// ParseList parses a comma separated field value. An empty value yields no dependencies.
func ParseList(kind Kind, field string) ([]Dependency, error) {
	deps := []Dependency{}
	for _, clause := range strings.Split(field, ",") {
		if strings.TrimSpace(clause) == "" {
			continue
		}
		d, err := Parse(kind, clause)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, nil
}

func parseSimple(kind Kind, clause string) (Simple, error) {
	clause = strings.TrimSpace(clause)
	s := Simple{Kind: kind}
	nameEnd := len(clause)

	if start := strings.IndexByte(clause, '('); start >= 0 {
		end := strings.IndexByte(clause[start:], ')')
		if end < 0 {
			return Simple{}, fmt.Errorf("%w: unterminated relationship in %q", ErrParse, clause)
		}
		rel, err := ParseRelationship(clause[start : start+end+1])
		if err != nil {
			return Simple{}, err
		}
		s.Relationship = &rel
		nameEnd = min(nameEnd, start)
	}

	if start := strings.IndexByte(clause, '['); start >= 0 {
		end := strings.IndexByte(clause[start:], ']')
		if end < 0 {
			return Simple{}, fmt.Errorf("%w: unterminated condition in %q", ErrParse, clause)
		}
		s.Condition = strings.TrimSpace(clause[start+1 : start+end])
		nameEnd = min(nameEnd, start)
	}

	name := strings.TrimSpace(clause[:nameEnd])
	if name == "" {
		return Simple{}, fmt.Errorf("%w: missing package name in %q", ErrParse, clause)
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name, s.ArchQualifier = name[:i], name[i+1:]
	}
	s.Name = name
	return s, nil
}
