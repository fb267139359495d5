package repository

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/dependency"
	"github.com/glorpus-work/fetchy/pkg/version"
)

// Control file field names read by the parser.
const (
	FieldPackage       = "Package"
	FieldVersion       = "Version"
	FieldArchitecture  = "Architecture"
	FieldInstalledSize = "Installed-Size"
	FieldDepends       = "Depends"
	FieldPreDepends    = "Pre-Depends"
	FieldFilename      = "Filename"
	FieldProvides      = "Provides"
	FieldSHA256        = "SHA256"
)

// maxLineSize bounds a single index line; Description fields can be long.
const maxLineSize = 1 << 20

// Stanza is one paragraph of a control file, keyed by field name.
type Stanza map[string]string

// ReadStanzas calls fn for every stanza in r. Continuation lines are folded
// into the previous field. Lines without a "Field:" prefix are ignored.
func ReadStanzas(r io.Reader, fn func(Stanza) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	current := Stanza{}
	lastField := ""
	flush := func() error {
		if len(current) == 0 {
			return nil
		}
		err := fn(current)
		current = Stanza{}
		lastField = ""
		return err
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if lastField != "" {
				current[lastField] += "\n" + strings.TrimSpace(line)
			}
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		lastField = strings.TrimSpace(field)
		current[lastField] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading index: %w", err)
	}
	return flush()
}

// ParsePackage builds a Package from a stanza. Stanzas lacking Package, Version
// or Architecture fail with ErrMissingField; unparsable values fail with ErrInvalidStanza.
func ParsePackage(st Stanza, origin string) (*Package, error) {
	for _, field := range []string{FieldPackage, FieldVersion, FieldArchitecture} {
		if st[field] == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	v, err := version.Parse(st[FieldVersion])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidStanza, st[FieldPackage], err)
	}

	pkg := &Package{
		Name:          st[FieldPackage],
		Version:       v,
		Architecture:  st[FieldArchitecture],
		Origin:        origin,
		InstalledSize: UnknownInstalledSize,
		Filename:      st[FieldFilename],
		SHA256:        st[FieldSHA256],
	}

	if raw := st[FieldInstalledSize]; raw != "" {
		size, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: installed size %q", ErrInvalidStanza, pkg.Name, raw)
		}
		pkg.InstalledSize = size
	}

	if pkg.Depends, err = dependency.ParseList(dependency.Depends, st[FieldDepends]); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidStanza, pkg.Name, err)
	}
	if pkg.PreDepends, err = dependency.ParseList(dependency.PreDepends, st[FieldPreDepends]); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidStanza, pkg.Name, err)
	}
	pkg.Provides = parseProvides(st[FieldProvides])

	return pkg, nil
}

// parseProvides keeps only the names of a Provides field, dropping version qualifiers.
func parseProvides(field string) []string {
	provides := []string{}
	for _, clause := range strings.Split(field, ",") {
		name := strings.TrimSpace(clause)
		if i := strings.IndexAny(name, " ("); i >= 0 {
			name = name[:i]
		}
		if name != "" {
			provides = append(provides, name)
		}
	}
	return provides
}

// ParseIndex reads a decompressed Packages index. Rejected stanzas are logged
// and skipped; only read errors abort parsing.
func ParseIndex(r io.Reader, origin string) (*Repository, error) {
	repo := New()
	skipped := 0
	err := ReadStanzas(r, func(st Stanza) error {
		pkg, err := ParsePackage(st, origin)
		if err != nil {
			skipped++
			logger.Debug("Skipping stanza", logger.Fields{"package": st[FieldPackage], "error": err.Error()})
			return nil
		}
		repo.Add(pkg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.Debug("Parsed index", logger.Fields{"origin": origin, "packages": repo.Len(), "skipped": skipped})
	}
	return repo, nil
}
