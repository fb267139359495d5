// Package materializer unpacks .deb archives into a root tree without dpkg
// and synthesizes the dpkg database (status, info files) for them.
//
// A Materializer is not safe for concurrent use: packages must be unpacked
// one after another in resolver order.
package materializer

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/glorpus-work/fetchy/pkg/archive"
	"github.com/glorpus-work/fetchy/pkg/fsutil"
	"github.com/glorpus-work/fetchy/pkg/repository"
)

// Options configures a Materializer.
type Options struct {
	// BootstrapShell is recorded as installed rather than unpacked. Defaults to "dash".
	BootstrapShell string
}

// Materializer writes packages into a root directory.
type Materializer struct {
	root     string
	opts     Options
	manifest []string
	// directories whose archive mode is applied by Finish
	restricted []restrictedDir
}

// New prepares root for materialization: it creates the dpkg info directory,
// an empty status file and an empty dpkg log.
func New(root string, opts Options) (*Materializer, error) {
	if opts.BootstrapShell == "" {
		opts.BootstrapShell = DefaultShell
	}
	m := &Materializer{root: root, opts: opts}

	if err := os.MkdirAll(m.path(InfoDir), fsutil.DirModeDefault); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", InfoDir, err)
	}
	for _, p := range []string{StatusPath, DpkgLogPath} {
		if err := fsutil.EnsureFileDir(m.path(p)); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", p, err)
		}
		f, err := os.OpenFile(m.path(p), os.O_WRONLY|os.O_CREATE|os.O_APPEND, fsutil.FileModeDefault)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Root returns the target directory.
func (m *Materializer) Root() string {
	return m.root
}

// Manifest returns the install script invocations recorded so far.
func (m *Materializer) Manifest() []string {
	return append([]string(nil), m.manifest...)
}

// MaterializeAll unpacks pkgs in order. archives maps package names to local .deb paths.
// before, if not nil, is called right before each package is unpacked.
func (m *Materializer) MaterializeAll(ctx context.Context, pkgs []*repository.Package, archives map[string]string, before func(*repository.Package)) error {
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, ok := archives[pkg.Name]
		if !ok {
			return &PackageError{Package: pkg.Name, Err: ErrMissingArchive}
		}
		if before != nil {
			before(pkg)
		}
		if err := m.Materialize(ctx, pkg, path); err != nil {
			return err
		}
	}
	return nil
}

// Materialize unpacks a single package archive and records it in the dpkg database.
func (m *Materializer) Materialize(ctx context.Context, pkg *repository.Package, archivePath string) error {
	logger.Debug("Materializing package", logger.Fields{"package": pkg.Name, "archive": archivePath})

	f, err := os.Open(archivePath)
	if err != nil {
		return &PackageError{Package: pkg.Name, Err: err}
	}
	defer func() { _ = f.Close() }()

	deb := archive.Deb{
		Control: func(name string, r io.Reader) error {
			return archive.WalkTar(ctx, name, r, func(_ context.Context, e archive.Entry) error {
				return m.writeInfo(pkg.Name, e)
			})
		},
		Data: func(name string, r io.Reader) error {
			return m.unpackData(ctx, pkg.Name, name, r)
		},
	}
	if err := deb.Walk(f); err != nil {
		return &PackageError{Package: pkg.Name, Err: fmt.Errorf("%w: %w", ErrArchive, err)}
	}

	if err := m.appendStatus(pkg); err != nil {
		return &PackageError{Package: pkg.Name, Err: err}
	}
	if err := m.stageScripts(pkg.Name); err != nil {
		return &PackageError{Package: pkg.Name, Err: err}
	}
	return nil
}

// writeInfo copies a control member to var/lib/dpkg/info/<pkg>.<name>.
func (m *Materializer) writeInfo(pkg string, e archive.Entry) error {
	if e.Header.Typeflag != tar.TypeReg {
		return nil
	}
	name := strings.TrimLeft(e.Name(), "./")
	if name == "" {
		return nil
	}
	rc, err := e.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	return m.createInfo(pkg, name, rc, e.Header.FileInfo().Mode().Perm())
}

func (m *Materializer) createInfo(pkg, name string, r io.Reader, perm os.FileMode) error {
	path := m.infoPath(pkg, name)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s.%s", ErrInfoCollision, pkg, name)
	}
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// unpackData extracts the data member into the root and writes the package's list file.
func (m *Materializer) unpackData(ctx context.Context, pkg, member string, r io.Reader) error {
	var list strings.Builder
	err := archive.WalkTar(ctx, member, r, func(_ context.Context, e archive.Entry) error {
		if name := strings.TrimLeft(e.Name(), "."); name != "" {
			list.WriteString(name)
			list.WriteByte('\n')
		}
		return m.extract(e)
	})
	if err != nil {
		return err
	}
	return m.createInfo(pkg, "list", strings.NewReader(list.String()), fsutil.FileModeDefault)
}

func (m *Materializer) extract(e archive.Entry) error {
	target, err := m.entryPath(e.Name())
	if err != nil {
		return err
	}
	hdr := e.Header
	mode := hdr.FileInfo().Mode() & modeBits

	if hdr.Typeflag == tar.TypeDir {
		return m.extractDir(hdr.Name, target, mode)
	}

	if _, err := os.Lstat(target); err == nil {
		logger.Debug("Skipping existing path", logger.Fields{"path": hdr.Name})
		return nil
	}
	if err := fsutil.EnsureFileDir(target); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", hdr.Name, err)
	}

	switch hdr.Typeflag {
	case tar.TypeReg:
		rc, err := e.Open()
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode.Perm())
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", hdr.Name, err)
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			return fmt.Errorf("failed to write %s: %w", hdr.Name, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		return os.Chmod(target, mode)
	case tar.TypeSymlink:
		return os.Symlink(hdr.Linkname, target)
	case tar.TypeLink:
		if _, ok := fsutil.WithinRoot(m.root, hdr.Linkname); !ok {
			return fmt.Errorf("%w: hardlink %s -> %s", archive.ErrUnsafePath, hdr.Name, hdr.Linkname)
		}
		source, err := securejoin.SecureJoin(m.root, hdr.Linkname)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", archive.ErrUnsafePath, hdr.Linkname, err)
		}
		return os.Link(source, target)
	default:
		// device nodes and fifos need privileges
		logger.Debug("Skipping special file", logger.Fields{"path": hdr.Name, "type": string(hdr.Typeflag)})
		return nil
	}
}

// modeBits are the permission bits carried over from archive headers.
const modeBits = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// entryPath confines the parent directory of name to the root. The final
// component is not resolved, so an existing symlink there is seen as such
// and never written through.
func (m *Materializer) entryPath(name string) (string, error) {
	if _, ok := fsutil.WithinRoot(m.root, name); !ok {
		return "", fmt.Errorf("%w: %s", archive.ErrUnsafePath, name)
	}
	clean := filepath.Clean("/" + filepath.FromSlash(name))
	parent, err := securejoin.SecureJoin(m.root, filepath.Dir(clean))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", archive.ErrUnsafePath, name, err)
	}
	if clean == string(filepath.Separator) {
		return parent, nil
	}
	return filepath.Join(parent, filepath.Base(clean)), nil
}

// extractDir creates a directory entry with its archive mode. A path already
// taken by a non-directory is left alone. Directories without full owner
// access stay writable until Finish so later entries can land in them.
func (m *Materializer) extractDir(name, target string, mode fs.FileMode) error {
	if st, err := os.Lstat(target); err == nil && !st.IsDir() {
		logger.Debug("Skipping directory over existing path", logger.Fields{"path": name})
		return nil
	}
	if err := os.MkdirAll(target, fsutil.DirModePrivate); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", name, err)
	}
	if mode&0o700 != 0o700 {
		m.restricted = append(m.restricted, restrictedDir{path: target, mode: mode})
		mode |= 0o700
	}
	if err := os.Chmod(target, mode); err != nil {
		return fmt.Errorf("failed to set mode of %s: %w", name, err)
	}
	return nil
}

type restrictedDir struct {
	path string
	mode fs.FileMode
}

// applyRestrictedModes sets the final mode of directories that were kept
// owner-writable during extraction, deepest first.
func (m *Materializer) applyRestrictedModes() error {
	for i := len(m.restricted) - 1; i >= 0; i-- {
		d := m.restricted[i]
		if err := os.Chmod(d.path, d.mode); err != nil {
			return fmt.Errorf("failed to set mode of %s: %w", d.path, err)
		}
	}
	m.restricted = nil
	return nil
}
