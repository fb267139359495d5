package materializer

import (
	"fmt"
	"os"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/dependency"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
	"github.com/glorpus-work/fetchy/pkg/repository"
)

// Package states written to the status database.
const (
	StateUnpacked  = "install ok unpacked"
	StateInstalled = "install ok installed"
)

// StatusStanza renders the status database entry for pkg, including the
// terminating blank line.
func StatusStanza(pkg *repository.Package, bootstrapShell string) string {
	state := StateUnpacked
	if pkg.Name == bootstrapShell {
		state = StateInstalled
	}

	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "%s: %s\n", name, value)
	}
	field(repository.FieldPackage, pkg.Name)
	field("Status", state)
	field(repository.FieldArchitecture, pkg.Architecture)
	field(repository.FieldVersion, pkg.Version.String())
	if len(pkg.Provides) > 0 {
		field(repository.FieldProvides, strings.Join(pkg.Provides, ", "))
	}
	if len(pkg.Depends) > 0 {
		field(repository.FieldDepends, dependency.JoinList(pkg.Depends))
	}
	if len(pkg.PreDepends) > 0 {
		field(repository.FieldPreDepends, dependency.JoinList(pkg.PreDepends))
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *Materializer) appendStatus(pkg *repository.Package) error {
	f, err := os.OpenFile(m.path(StatusPath), os.O_WRONLY|os.O_CREATE|os.O_APPEND, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to open status file: %w", err)
	}
	if _, err := f.WriteString(StatusStanza(pkg, m.opts.BootstrapShell)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append status: %w", err)
	}
	return f.Close()
}
