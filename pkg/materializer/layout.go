package materializer

import (
	"path/filepath"

	"github.com/glorpus-work/fetchy/pkg/fsutil"
)

// Paths inside the target root, slash separated.
const (
	StatusPath    = "var/lib/dpkg/status"
	InfoDir       = "var/lib/dpkg/info"
	DpkgLogPath   = "var/log/dpkg.log"
	ScriptsDir    = "scripts"
	ManifestPath  = "scripts/manifest"
	RemovalPath   = "scripts/remove.sh"
	DefaultShell  = "dash"
	installScript = "install.sh"
	preinstScript = "preinstall.sh"
)

func (m *Materializer) path(slashPath string) string {
	return fsutil.JoinSlash(m.root, slashPath)
}

func (m *Materializer) infoPath(pkg, name string) string {
	return filepath.Join(m.path(InfoDir), pkg+"."+name)
}
