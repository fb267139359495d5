package source

import (
	"fmt"
	"net/url"
	"strings"
)

// Distributions with a built-in default mirror.
const (
	Ubuntu = "ubuntu"
	Debian = "debian"
)

// Mirror is the base URL of a Debian style archive plus the components and
// update suites to read from it.
type Mirror struct {
	Name       string
	URL        string
	Components []string
	Updates    []string
}

// UbuntuMirror returns the Ubuntu archive, the country mirror when locale is set.
func UbuntuMirror(locale string) Mirror {
	base := "http://archive.ubuntu.com/ubuntu/"
	if locale != "" {
		base = fmt.Sprintf("http://%s.archive.ubuntu.com/ubuntu/", locale)
	}
	return Mirror{
		Name:       Ubuntu,
		URL:        base,
		Components: []string{"main", "universe"},
		Updates:    []string{"updates", "security"},
	}
}

// DebianMirror returns the Debian archive, the country mirror when locale is set.
func DebianMirror(locale string) Mirror {
	base := "http://ftp.debian.org/debian/"
	if locale != "" {
		base = fmt.Sprintf("http://ftp.%s.debian.org/debian/", locale)
	}
	return Mirror{
		Name:       Debian,
		URL:        base,
		Components: []string{"main"},
		Updates:    []string{"updates"},
	}
}

// DistributionMirror returns the default mirror for distribution. A non-empty
// override replaces the base URL but keeps components and updates.
func DistributionMirror(distribution, locale, override string) (Mirror, error) {
	var m Mirror
	switch strings.ToLower(distribution) {
	case Ubuntu:
		m = UbuntuMirror(locale)
	case Debian:
		m = DebianMirror(locale)
	default:
		return Mirror{}, fmt.Errorf("%w: %q", ErrUnknownDistribution, distribution)
	}
	if override != "" {
		m.URL = withSlash(override)
	}
	return m, nil
}

// PPAMirror resolves a Launchpad PPA given as "owner/name" or as a full URL.
// PPAs only carry the main component and no update suites.
func PPAMirror(ref string) (Mirror, error) {
	ref = strings.TrimSpace(ref)
	m := Mirror{Name: "ppa:" + ref, Components: []string{"main"}}

	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		m.URL = withSlash(ref)
		return m, nil
	}

	owner, name, ok := strings.Cut(strings.TrimPrefix(ref, "ppa:"), "/")
	if !ok || owner == "" || name == "" || strings.ContainsAny(name, "/ ") || strings.Contains(owner, " ") {
		return Mirror{}, fmt.Errorf("%w: %q", ErrInvalidPPA, ref)
	}
	m.Name = "ppa:" + owner + "/" + name
	m.URL = fmt.Sprintf("http://ppa.launchpad.net/%s/%s/ubuntu/", owner, name)
	return m, nil
}

func withSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
