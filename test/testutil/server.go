package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/klauspost/compress/gzip"
)

// TestServer serves a directory laid out like a Debian mirror and counts
// the requests it sees per path.
type TestServer struct {
	Server *httptest.Server
	URL    string
	Dir    string

	mu   sync.Mutex
	hits map[string]int
}

// NewTestServer starts a mirror server over dir. It is closed when the test ends.
func NewTestServer(t *testing.T, dir string) *TestServer {
	t.Helper()
	ts := &TestServer{Dir: dir, hits: make(map[string]int)}
	files := http.FileServer(http.Dir(dir))
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.hits[r.URL.Path]++
		ts.mu.Unlock()
		logger.Debugf("test mirror: %s %s", r.Method, r.URL.Path)
		files.ServeHTTP(w, r)
	}))
	ts.URL = ts.Server.URL + "/"
	t.Cleanup(ts.Server.Close)
	return ts
}

// Hits returns how often path was requested.
func (ts *TestServer) Hits(path string) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.hits[path]
}

// WriteIndex writes a gzip compressed Packages index for the given suite,
// component and architecture below dir.
func WriteIndex(t *testing.T, dir, suite, component, arch, stanzas string) string {
	t.Helper()
	path := filepath.Join(dir, "dists", suite, component, "binary-"+arch, "Packages.gz")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create index directory: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create index: %v", err)
	}
	defer func() { _ = f.Close() }()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(stanzas)); err != nil {
		t.Fatalf("Failed to write index: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to flush index: %v", err)
	}
	return path
}

// WriteFile writes data to dir/name, creating parents.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
