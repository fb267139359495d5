package platform

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/ini.v1"
)

// OSRelease holds the os-release fields fetchy cares about.
type OSRelease struct {
	ID              string
	IDLike          []string
	VersionID       string
	VersionCodename string
}

// Distribution returns the supported distribution the release belongs to,
// looking at ID_LIKE for derivatives, or "" when there is none.
func (r OSRelease) Distribution() string {
	for _, id := range append([]string{r.ID}, r.IDLike...) {
		if slices.Contains(ValidDistributions(), id) {
			return id
		}
	}
	return ""
}

// ReadOSRelease parses an os-release file.
func ReadOSRelease(r io.Reader) (OSRelease, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, r)
	if err != nil {
		return OSRelease{}, fmt.Errorf("ini.LoadSources(): %w", err)
	}
	sec := cfg.Section(ini.DefaultSection)

	rel := OSRelease{
		ID:              strings.ToLower(sec.Key("ID").String()),
		VersionID:       sec.Key("VERSION_ID").String(),
		VersionCodename: strings.ToLower(sec.Key("VERSION_CODENAME").String()),
	}
	if like := sec.Key("ID_LIKE").String(); like != "" {
		rel.IDLike = strings.Fields(strings.ToLower(like))
	}
	// Ubuntu derivatives carry the upstream release here
	if codename := sec.Key("UBUNTU_CODENAME").String(); codename != "" && rel.Distribution() == Ubuntu {
		rel.VersionCodename = strings.ToLower(codename)
	}
	return rel, nil
}

// DetectOSRelease reads the first existing file of paths.
func DetectOSRelease(paths ...string) (OSRelease, error) {
	var lastErr error
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			lastErr = err
			continue
		}
		rel, err := ReadOSRelease(f)
		_ = f.Close()
		return rel, err
	}
	if lastErr == nil {
		lastErr = os.ErrNotExist
	}
	return OSRelease{}, lastErr
}
