package source

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/fetchy/pkg/cache"
	"github.com/glorpus-work/fetchy/pkg/download"
	"github.com/glorpus-work/fetchy/test/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const mainIndex = `Package: bash
Version: 5.2.15-2
Architecture: amd64
Installed-Size: 7164
Depends: libc6 (>= 2.36)
Filename: pool/main/b/bash/bash_5.2.15-2_amd64.deb

Package: libc6
Version: 2.36-9
Architecture: amd64
Filename: pool/main/g/glibc/libc6_2.36-9_amd64.deb
`

const updatesIndex = `Package: libc6
Version: 2.36-9+deb12u4
Architecture: amd64
Filename: pool/main/g/glibc/libc6_2.36-9+deb12u4_amd64.deb`

const ppaIndex = `Package: bash
Version: 5.3-1~ppa1
Architecture: amd64
Filename: pool/main/b/bash/bash_5.3-1~ppa1_amd64.deb

Package: hello
Version: 2.10-3
Architecture: amd64
Filename: pool/main/h/hello/hello_2.10-3_amd64.deb
`

func newOpener() *download.ManagerImpl {
	m := download.NewManager(5*time.Second, 0, "")
	m.SetRetryWait(time.Millisecond, time.Millisecond)
	return m
}

func debianSource(base string) Source {
	return Source{
		Mirror:       Mirror{Name: "debian", URL: base, Components: []string{"main"}, Updates: []string{"updates"}},
		Codename:     "bookworm",
		Architecture: "amd64",
	}
}

func TestLoader_LoadMergesSuitesAndCaches(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteIndex(t, dir, "bookworm", "main", "amd64", mainIndex)
	testutil.WriteIndex(t, dir, "bookworm-updates", "main", "amd64", updatesIndex)
	server := testutil.NewTestServer(t, dir)

	store := cache.NewStore(t.TempDir())
	loader := NewLoader(newOpener(), store, 2)
	src := debianSource(server.URL)

	repo, err := loader.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "libc6"}, repo.Names())

	bash, ok := repo.Get("bash")
	require.True(t, ok)
	assert.Equal(t, server.URL+"pool/main/b/bash/bash_5.2.15-2_amd64.deb", bash.DownloadURL())

	key, err := src.CacheKey()
	require.NoError(t, err)
	assert.True(t, store.Has(cache.Indexes, key))

	// a second load is served from the cache
	_, err = loader.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, server.Hits("/dists/bookworm/main/binary-amd64/Packages.gz"))
	assert.Equal(t, 1, server.Hits("/dists/bookworm-updates/main/binary-amd64/Packages.gz"))
}

func TestLoader_LoadAllOrder(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteIndex(t, dir, "bookworm", "main", "amd64", mainIndex)
	testutil.WriteIndex(t, dir, "bookworm-updates", "main", "amd64", updatesIndex)
	testutil.WriteIndex(t, dir, "ppa/dists/bookworm", "main", "amd64", ppaIndex)
	server := testutil.NewTestServer(t, dir)

	ppa := Source{
		Mirror:       Mirror{Name: "ppa:test/ppa", URL: server.URL + "dists/ppa/", Components: []string{"main"}},
		Codename:     "bookworm",
		Architecture: "amd64",
	}
	repo, err := NewLoader(newOpener(), nil, 0).LoadAll(context.Background(), []Source{debianSource(server.URL), ppa})
	require.NoError(t, err)

	assert.Equal(t, []string{"bash", "hello", "libc6"}, repo.Names())
	bash, _ := repo.Get("bash")
	assert.Equal(t, "5.3", bash.Version.Upstream, "higher upstream from the PPA replaces the main entry")
	libc, _ := repo.Get("libc6")
	assert.Equal(t, "9", libc.Version.Revision, "same upstream keeps the first entry")
}

func TestLoader_MissingIndex(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteIndex(t, dir, "bookworm", "main", "amd64", mainIndex)
	server := testutil.NewTestServer(t, dir)

	store := cache.NewStore(t.TempDir())
	src := debianSource(server.URL)
	_, err := NewLoader(newOpener(), store, 1).Load(context.Background(), src)
	require.ErrorIs(t, err, ErrIndexFetch)
	assert.Contains(t, err.Error(), "bookworm-updates")

	key, err := src.CacheKey()
	require.NoError(t, err)
	assert.False(t, store.Has(cache.Indexes, key))
}

func TestLoader_XZ(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(ppaIndex))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	testutil.WriteFile(t, dir, "dists/noble/main/binary-arm64/Packages.xz", buf.Bytes())
	server := testutil.NewTestServer(t, dir)

	src := Source{
		Mirror:       Mirror{Name: "xz", URL: server.URL, Components: []string{"main"}},
		Codename:     "noble",
		Architecture: "arm64",
		Compression:  CompressionXZ,
	}
	repo, err := NewLoader(newOpener(), nil, 1).Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "hello"}, repo.Names())
}

func TestDecompress(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte("Package: a\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		name string
		data []byte
	}{
		{"Packages.gz", gz.Bytes()},
		{"Packages", []byte("Package: a\n")},
	}
	for _, tt := range tests {
		r, err := Decompress(tt.name, bytes.NewReader(tt.data))
		require.NoError(t, err)
		out, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, "Package: a\n", string(out))
	}

	_, err = Decompress("Packages.gz", strings.NewReader("not gzip"))
	assert.Error(t, err)
}
