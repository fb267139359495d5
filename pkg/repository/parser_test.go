package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `Package: bash
Architecture: amd64
Version: 5.2.15-2+b2
Essential: yes
Installed-Size: 7164
Pre-Depends: libc6 (>= 2.36), libtinfo6 (>= 6)
Depends: base-files (>= 2.1.12), debianutils (>= 5.6-0.1)
Filename: pool/main/b/bash/bash_5.2.15-2+b2_amd64.deb
Description: GNU Bourne Again SHell
 Bash is an sh-compatible command language interpreter.
 .
 It is the default shell.

Package: mawk
Version: 1.3.4.20200120-3.1
Architecture: amd64
Installed-Size: 263
Provides: awk
Depends: libc6 (>= 2.29)
Filename: pool/main/m/mawk/mawk_1.3.4.20200120-3.1_amd64.deb
SHA256: 4f5d2c6a0d1e8b9f3a7c5e2b1d0f9e8a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e

Package: missing-arch
Version: 1.0

Package: broken-deps
Version: 1.0
Architecture: all
Depends: libc6 (>= 2.29

Package: broken-size
Version: 1.0
Architecture: all
Installed-Size: lots

Package: libc6
Version: 2.36-9+deb12u4
Architecture: amd64
Installed-Size: 12988
Provides: libc6-2.36 (= 2.36-9), glibc
`

func TestParseIndex(t *testing.T) {
	origin := "http://ftp.debian.org/debian/"
	repo, err := ParseIndex(strings.NewReader(sampleIndex), origin)
	require.NoError(t, err)

	assert.Equal(t, []string{"bash", "libc6", "mawk"}, repo.Names())

	bash, ok := repo.Get("bash")
	require.True(t, ok)
	assert.Equal(t, "5.2.15", bash.Version.Upstream)
	assert.Equal(t, "2+b2", bash.Version.Revision)
	assert.Equal(t, uint64(7164), bash.InstalledSize)
	assert.Equal(t, origin, bash.Origin)
	require.Len(t, bash.PreDepends, 2)
	require.Len(t, bash.Depends, 2)
	assert.Equal(t, []string{"libc6"}, bash.PreDepends[0].Resolve())
	assert.Equal(t, []string{"base-files"}, bash.Depends[0].Resolve())
	assert.Equal(t, origin+"pool/main/b/bash/bash_5.2.15-2+b2_amd64.deb", bash.DownloadURL())
	assert.Empty(t, bash.Provides)

	var names []string
	for _, d := range bash.Dependencies() {
		names = append(names, d.Resolve()...)
	}
	assert.Equal(t, []string{"libc6", "libtinfo6", "base-files", "debianutils"}, names)

	mawk, _ := repo.Get("mawk")
	assert.Equal(t, []string{"awk"}, mawk.Provides)
	assert.Equal(t, "4f5d2c6a0d1e8b9f3a7c5e2b1d0f9e8a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e", mawk.SHA256)
	assert.Empty(t, bash.SHA256)

	libc, _ := repo.Get("libc6")
	assert.Equal(t, []string{"libc6-2.36", "glibc"}, libc.Provides)
	assert.Empty(t, libc.Depends)
	assert.Empty(t, libc.Filename)
}

func TestParsePackage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		stanza Stanza
		want   error
	}{
		{"missing package", Stanza{"Version": "1", "Architecture": "all"}, ErrMissingField},
		{"missing version", Stanza{"Package": "a", "Architecture": "all"}, ErrMissingField},
		{"missing architecture", Stanza{"Package": "a", "Version": "1"}, ErrMissingField},
		{"bad epoch", Stanza{"Package": "a", "Version": "x:1", "Architecture": "all"}, ErrInvalidStanza},
		{"bad size", Stanza{"Package": "a", "Version": "1", "Architecture": "all", "Installed-Size": "-1"}, ErrInvalidStanza},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackage(tt.stanza, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParsePackage_DefaultInstalledSize(t *testing.T) {
	p, err := ParsePackage(Stanza{"Package": "a", "Version": "1", "Architecture": "all"}, "")
	require.NoError(t, err)
	assert.Equal(t, UnknownInstalledSize, p.InstalledSize)
	assert.Empty(t, p.Depends)
	assert.Empty(t, p.PreDepends)
}

func TestReadStanzas(t *testing.T) {
	input := "\n\nA: 1\nB: two\n words\n\n\n\nA: 2\ngarbage line\nC:\n"
	var got []Stanza
	err := ReadStanzas(strings.NewReader(input), func(st Stanza) error {
		got = append(got, st)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Stanza{
		{"A": "1", "B": "two\nwords"},
		{"A": "2", "C": ""},
	}, got)
}

func TestReadStanzas_CallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ReadStanzas(strings.NewReader("A: 1\n\nA: 2\n"), func(Stanza) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestParseIndex_ReadError(t *testing.T) {
	_, err := ParseIndex(failingReader{}, "")
	assert.Error(t, err)
}
