package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/gzip"
)

// File is one tar entry of a synthetic package.
type File struct {
	Name string
	Body string
	Mode int64
	// Type defaults to a regular file. Use tar.TypeDir, tar.TypeSymlink or tar.TypeLink.
	Type byte
	Link string
}

// Deb describes a synthetic binary package.
type Deb struct {
	Control []File
	Data    []File
	// Plain stores the tar members uncompressed instead of gzipped.
	Plain bool
	// SkipData omits the data member.
	SkipData bool
}

// Dir is shorthand for a directory entry.
func Dir(name string) File {
	return File{Name: name, Type: tar.TypeDir, Mode: 0o755}
}

// Symlink is shorthand for a symbolic link entry.
func Symlink(name, target string) File {
	return File{Name: name, Type: tar.TypeSymlink, Link: target}
}

// Hardlink is shorthand for a hard link entry.
func Hardlink(name, target string) File {
	return File{Name: name, Type: tar.TypeLink, Link: target}
}

var epoch = time.Unix(1700000000, 0)

// BuildDeb assembles the package described by d.
func BuildDeb(t testing.TB, d Deb) []byte {
	t.Helper()

	var out bytes.Buffer
	w := ar.NewWriter(&out)
	if err := w.WriteGlobalHeader(); err != nil {
		t.Fatalf("Failed to write ar header: %v", err)
	}
	addMember(t, w, "debian-binary", []byte("2.0\n"))

	suffix := ".tar.gz"
	if d.Plain {
		suffix = ".tar"
	}
	addMember(t, w, "control"+suffix, buildTar(t, d.Control, !d.Plain))
	if !d.SkipData {
		addMember(t, w, "data"+suffix, buildTar(t, d.Data, !d.Plain))
	}
	return out.Bytes()
}

func addMember(t testing.TB, w *ar.Writer, name string, body []byte) {
	t.Helper()
	hdr := &ar.Header{Name: name, ModTime: epoch, Mode: 0o644, Size: int64(len(body))}
	if err := w.WriteHeader(hdr); err != nil {
		t.Fatalf("Failed to write member header %s: %v", name, err)
	}
	if _, err := w.Write(body); err != nil {
		t.Fatalf("Failed to write member %s: %v", name, err)
	}
}

func buildTar(t testing.TB, files []File, compress bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	var sink io.Writer = &buf
	var zw *gzip.Writer
	if compress {
		zw = gzip.NewWriter(&buf)
		sink = zw
	}

	tw := tar.NewWriter(sink)
	for _, f := range files {
		hdr := &tar.Header{
			Name:     f.Name,
			Mode:     f.Mode,
			Typeflag: f.Type,
			Linkname: f.Link,
			ModTime:  epoch,
			Format:   tar.FormatGNU,
		}
		if hdr.Typeflag == 0 {
			hdr.Typeflag = tar.TypeReg
		}
		if hdr.Mode == 0 {
			hdr.Mode = 0o644
		}
		if hdr.Typeflag == tar.TypeReg {
			hdr.Size = int64(len(f.Body))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write tar header %s: %v", f.Name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(f.Body)); err != nil {
				t.Fatalf("Failed to write tar body %s: %v", f.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("Failed to close tar: %v", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			t.Fatalf("Failed to close gzip: %v", err)
		}
	}
	return buf.Bytes()
}
