package platform

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/errors"
)

// Platform is a distribution release on a given architecture.
type Platform struct {
	Distribution string `yaml:"distribution" json:"distribution"`
	Codename     string `yaml:"codename" json:"codename"`
	Arch         string `yaml:"architecture" json:"architecture"`
}

// String returns "distribution/codename/arch".
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s/%s", p.Distribution, p.Codename, p.Arch)
}

// Validate checks the distribution and codename against the known releases.
// An empty architecture is rejected; unknown architectures are allowed since
// ports publish more than ValidArch lists.
func (p Platform) Validate() error {
	if !slices.Contains(ValidDistributions(), p.Distribution) {
		return fmt.Errorf("%w: %q", errors.ErrUnknownDistribution, p.Distribution)
	}
	if !IsKnownCodename(p.Distribution, p.Codename) {
		return fmt.Errorf("%w: %q for %s", errors.ErrUnknownCodename, p.Codename, p.Distribution)
	}
	if p.Arch == "" {
		return fmt.Errorf("%w: empty architecture", errors.ErrValidation)
	}
	return nil
}

// CurrentArch returns the Debian name of the running architecture.
func CurrentArch() string {
	return DebianArch(runtime.GOARCH)
}

// Detect returns the host platform. Distribution and codename come from
// os-release when the host runs a known Debian or Ubuntu release; otherwise
// the defaults are used.
func Detect() Platform {
	p := Platform{
		Distribution: DefaultDistribution,
		Codename:     DefaultCodename,
		Arch:         CurrentArch(),
	}
	rel, err := DetectOSRelease(OSReleasePath, OSReleaseFallbackPath)
	if err != nil {
		return p
	}
	if IsKnownCodename(rel.Distribution(), rel.VersionCodename) {
		p.Distribution = rel.Distribution()
		p.Codename = rel.VersionCodename
	}
	return p
}

// DebianArch maps a GOARCH value, or a common alias such as x86_64, to the
// Debian architecture name. Unknown values are returned lowercased.
func DebianArch(arch string) string {
	arch = strings.ToLower(arch)
	switch arch {
	case "amd64", "x86_64", "x64":
		return ArchAMD64
	case "arm64", "aarch64":
		return ArchARM64
	case "386", "x86", "i386", "i686":
		return ArchI386
	case "arm", "armv7", "armv7l", "armhf":
		return ArchARMHF
	case "ppc64le", "ppc64el":
		return ArchPPC64EL
	case "mips64le", "mips64el":
		return ArchMIPS64EL
	default:
		return arch
	}
}

// KnownCodenames lists the release codenames of dist, oldest first.
// It returns nil for unsupported distributions.
func KnownCodenames(dist string) []string {
	switch strings.ToLower(dist) {
	case Ubuntu:
		return slices.Clone(ubuntuCodenames)
	case Debian:
		return slices.Clone(debianCodenames)
	default:
		return nil
	}
}

// IsKnownCodename reports whether codename is a release of dist.
func IsKnownCodename(dist, codename string) bool {
	return slices.Contains(KnownCodenames(dist), strings.ToLower(codename))
}
