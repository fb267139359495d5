package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionMirror(t *testing.T) {
	tests := []struct {
		dist, locale, override string
		url                    string
		components, updates    []string
	}{
		{"ubuntu", "", "", "http://archive.ubuntu.com/ubuntu/", []string{"main", "universe"}, []string{"updates", "security"}},
		{"Ubuntu", "nl", "", "http://nl.archive.ubuntu.com/ubuntu/", []string{"main", "universe"}, []string{"updates", "security"}},
		{"debian", "", "", "http://ftp.debian.org/debian/", []string{"main"}, []string{"updates"}},
		{"debian", "de", "", "http://ftp.de.debian.org/debian/", []string{"main"}, []string{"updates"}},
		{"debian", "de", "https://deb.example.org/debian", "https://deb.example.org/debian/", []string{"main"}, []string{"updates"}},
	}
	for _, tt := range tests {
		m, err := DistributionMirror(tt.dist, tt.locale, tt.override)
		require.NoError(t, err)
		assert.Equal(t, tt.url, m.URL)
		assert.Equal(t, tt.components, m.Components)
		assert.Equal(t, tt.updates, m.Updates)
	}

	_, err := DistributionMirror("fedora", "", "")
	assert.ErrorIs(t, err, ErrUnknownDistribution)
}

func TestPPAMirror(t *testing.T) {
	tests := []struct {
		ref  string
		url  string
		name string
	}{
		{"deadsnakes/ppa", "http://ppa.launchpad.net/deadsnakes/ppa/ubuntu/", "ppa:deadsnakes/ppa"},
		{"ppa:git-core/ppa", "http://ppa.launchpad.net/git-core/ppa/ubuntu/", "ppa:git-core/ppa"},
		{"https://ppa.example.org/custom/ubuntu", "https://ppa.example.org/custom/ubuntu/", "ppa:https://ppa.example.org/custom/ubuntu"},
		{"http://ppa.example.org/x/", "http://ppa.example.org/x/", "ppa:http://ppa.example.org/x/"},
	}
	for _, tt := range tests {
		m, err := PPAMirror(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.url, m.URL)
		assert.Equal(t, tt.name, m.Name)
		assert.Equal(t, []string{"main"}, m.Components)
		assert.Empty(t, m.Updates)
	}

	for _, bad := range []string{"", "justaname", "owner/", "/name", "a/b/c", "ftp://host/path"} {
		_, err := PPAMirror(bad)
		assert.ErrorIs(t, err, ErrInvalidPPA, "ref %q", bad)
	}
}

func TestSource_IndexURLs(t *testing.T) {
	src := Source{Mirror: UbuntuMirror(""), Codename: "jammy", Architecture: "amd64"}
	urls, err := src.IndexURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://archive.ubuntu.com/ubuntu/dists/jammy/main/binary-amd64/Packages.gz",
		"http://archive.ubuntu.com/ubuntu/dists/jammy-updates/main/binary-amd64/Packages.gz",
		"http://archive.ubuntu.com/ubuntu/dists/jammy-security/main/binary-amd64/Packages.gz",
		"http://archive.ubuntu.com/ubuntu/dists/jammy/universe/binary-amd64/Packages.gz",
		"http://archive.ubuntu.com/ubuntu/dists/jammy-updates/universe/binary-amd64/Packages.gz",
		"http://archive.ubuntu.com/ubuntu/dists/jammy-security/universe/binary-amd64/Packages.gz",
	}, urls)

	src = Source{Mirror: DebianMirror(""), Codename: "bookworm", Architecture: "arm64", Compression: CompressionXZ}
	urls, err = src.IndexURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://ftp.debian.org/debian/dists/bookworm/main/binary-arm64/Packages.xz",
		"http://ftp.debian.org/debian/dists/bookworm-updates/main/binary-arm64/Packages.xz",
	}, urls)

	_, err = Source{Mirror: DebianMirror(""), Compression: "zip"}.IndexURLs()
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestSource_CacheKey(t *testing.T) {
	a := Source{Mirror: DebianMirror(""), Codename: "bookworm", Architecture: "amd64"}
	b := a
	b.Codename = "trixie"

	ka, err := a.CacheKey()
	require.NoError(t, err)
	kb, err := b.CacheKey()
	require.NoError(t, err)
	assert.Len(t, ka, 32)
	assert.NotEqual(t, ka, kb)

	again, err := a.CacheKey()
	require.NoError(t, err)
	assert.Equal(t, ka, again)
}

func TestBuild(t *testing.T) {
	sources, err := Build(Config{
		Distribution: "ubuntu",
		Codename:     "noble",
		Architecture: "amd64",
		Components:   []string{"main"},
		Updates:      []string{},
		PPAs:         []string{"deadsnakes/ppa"},
		Compression:  CompressionNone,
	})
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, []string{"main"}, sources[0].Mirror.Components)
	assert.Empty(t, sources[0].Mirror.Updates)
	assert.Equal(t, CompressionNone, sources[0].Compression)
	assert.Equal(t, "ppa:deadsnakes/ppa", sources[1].Mirror.Name)
	assert.Equal(t, CompressionGzip, sources[1].Compression)

	sources, err = Build(Config{Distribution: "debian", Codename: "bookworm", Architecture: "amd64"})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, []string{"updates"}, sources[0].Mirror.Updates)

	_, err = Build(Config{Distribution: "ubuntu", PPAs: []string{"broken"}})
	assert.ErrorIs(t, err, ErrInvalidPPA)
}
