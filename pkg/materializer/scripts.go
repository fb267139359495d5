package materializer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/fsutil"
)

// maintainer scripts in the order they have to run
var maintainerScripts = []struct {
	control string
	script  string
	arg     string
}{
	{"preinst", preinstScript, "install"},
	{"postinst", installScript, "configure"},
}

// stageScripts copies the package's maintainer scripts to scripts/<pkg>/ and
// records their invocations in the manifest.
func (m *Materializer) stageScripts(pkg string) error {
	for _, s := range maintainerScripts {
		src := m.infoPath(pkg, s.control)
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return err
		}

		rel := path.Join(ScriptsDir, pkg, s.script)
		if err := fsutil.EnsureFileDir(m.path(rel)); err != nil {
			return fmt.Errorf("failed to create script directory: %w", err)
		}
		if err := fsutil.Copy(src, m.path(rel)); err != nil {
			return fmt.Errorf("failed to stage %s: %w", s.control, err)
		}
		if err := os.Chmod(m.path(rel), fsutil.FileModeExec); err != nil {
			return err
		}
		m.manifest = append(m.manifest, "/"+rel+" "+s.arg)
	}
	return nil
}

// Finish applies deferred directory modes, writes the install script
// manifest to scripts/manifest and returns it.
func (m *Materializer) Finish() ([]string, error) {
	if err := m.applyRestrictedModes(); err != nil {
		return nil, err
	}
	content := ""
	if len(m.manifest) > 0 {
		content = strings.Join(m.manifest, "\n") + "\n"
	}
	if err := fsutil.WriteFileAtomic(m.path(ManifestPath), []byte(content), fsutil.FileModeDefault); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	return m.Manifest(), nil
}
