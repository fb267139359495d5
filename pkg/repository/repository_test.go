package repository

import (
	"testing"

	"github.com/glorpus-work/fetchy/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkg(name, ver, origin string) *Package {
	return &Package{
		Name:          name,
		Version:       version.MustParse(ver),
		Architecture:  "amd64",
		Origin:        origin,
		InstalledSize: UnknownInstalledSize,
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name      string
		first     *Package
		second    *Package
		wantAdded bool
		wantFrom  string
	}{
		{"identical package is idempotent", pkg("bash", "5.2-1", "main"), pkg("bash", "5.2-1", "main"), false, "main"},
		{"equal upstream keeps first", pkg("bash", "5.2-1", "main"), pkg("bash", "5.2-7", "ppa"), false, "main"},
		{"lower upstream never overwrites", pkg("bash", "5.2-1", "main"), pkg("bash", "5.1-1", "ppa"), false, "main"},
		{"strictly newer upstream wins", pkg("bash", "5.1-1", "main"), pkg("bash", "5.2-1", "ppa"), true, "ppa"},
		{"numeric not lexical comparison", pkg("gcc", "9.4", "main"), pkg("gcc", "10.1", "ppa"), true, "ppa"},
		{"epoch is ignored", pkg("tar", "1.34", "main"), pkg("tar", "2:1.30", "ppa"), false, "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := New()
			require.True(t, repo.Add(tt.first))
			assert.Equal(t, tt.wantAdded, repo.Add(tt.second))

			got, ok := repo.Get(tt.first.Name)
			require.True(t, ok)
			assert.Equal(t, tt.wantFrom, got.Origin)
			assert.Equal(t, 1, repo.Len())
		})
	}
}

func TestAdd_Invalid(t *testing.T) {
	repo := New()
	assert.False(t, repo.Add(nil))
	assert.False(t, repo.Add(&Package{}))
	assert.True(t, repo.IsEmpty())
}

func TestMerge(t *testing.T) {
	primary := New()
	primary.Add(pkg("bash", "5.2-1", "main"))
	primary.Add(pkg("coreutils", "9.1-1", "main"))

	ppa := New()
	ppa.Add(pkg("bash", "5.3-1", "ppa"))
	ppa.Add(pkg("coreutils", "9.0-1", "ppa"))
	ppa.Add(pkg("jq", "1.7-1", "ppa"))

	primary.Merge(ppa)
	primary.Merge(New())
	primary.Merge(nil)

	assert.Equal(t, []string{"bash", "coreutils", "jq"}, primary.Names())
	bash, _ := primary.Get("bash")
	assert.Equal(t, "ppa", bash.Origin)
	coreutils, _ := primary.Get("coreutils")
	assert.Equal(t, "main", coreutils.Origin)
	assert.True(t, primary.Contains("jq"))
	assert.False(t, primary.Contains("zsh"))
}

func TestNilRepository(t *testing.T) {
	var repo *Repository
	assert.True(t, repo.IsEmpty())
	assert.Zero(t, repo.Len())
	assert.False(t, repo.Contains("bash"))
	assert.Nil(t, repo.Names())
}

func TestDownloadURL(t *testing.T) {
	p := pkg("bash", "5.2.15-2", "http://ftp.debian.org/debian/")
	assert.Equal(t, "http://ftp.debian.org/debian/bash-0:5.2.15-2", p.DownloadURL())

	p.Filename = "pool/main/b/bash/bash_5.2.15-2_amd64.deb"
	assert.Equal(t, "http://ftp.debian.org/debian/pool/main/b/bash/bash_5.2.15-2_amd64.deb", p.DownloadURL())
}
