// Package platform detects the host's Debian architecture and distribution
// and knows which release codenames each supported distribution publishes.
package platform

const (
	// Debian is the Debian distribution ID as found in os-release.
	Debian = "debian"
	// Ubuntu is the Ubuntu distribution ID as found in os-release.
	Ubuntu = "ubuntu"

	// ArchAMD64 represents 64-bit x86.
	ArchAMD64 = "amd64"
	// ArchARM64 represents AArch64.
	ArchARM64 = "arm64"
	// ArchI386 represents 32-bit x86.
	ArchI386 = "i386"
	// ArchARMHF represents 32-bit ARM with hardware floating point.
	ArchARMHF = "armhf"
	// ArchPPC64EL represents little-endian POWER.
	ArchPPC64EL = "ppc64el"
	// ArchS390X represents IBM Z.
	ArchS390X = "s390x"
	// ArchRISCV64 represents 64-bit RISC-V.
	ArchRISCV64 = "riscv64"
	// ArchMIPS64EL represents little-endian 64-bit MIPS.
	ArchMIPS64EL = "mips64el"
	// ArchAll marks architecture independent packages.
	ArchAll = "all"

	// DefaultDistribution is used when the host is not a Debian derivative.
	DefaultDistribution = Debian
	// DefaultCodename is used when the host is not a Debian derivative.
	DefaultCodename = "bookworm"

	// OSReleasePath is the standard location of the os-release file.
	OSReleasePath = "/etc/os-release"
	// OSReleaseFallbackPath is consulted when OSReleasePath is missing.
	OSReleaseFallbackPath = "/usr/lib/os-release"
)

var ubuntuCodenames = []string{
	"trusty", "xenial", "bionic", "focal", "groovy", "hirsute", "impish",
	"jammy", "kinetic", "lunar", "mantic", "noble", "devel",
}

var debianCodenames = []string{
	"buster", "bullseye", "bookworm", "trixie", "forky", "sid",
	"oldstable", "stable", "testing", "unstable",
}

// ValidDistributions returns the supported distribution IDs.
func ValidDistributions() []string {
	return []string{Debian, Ubuntu}
}

// ValidArch returns the Debian architecture names fetchy can target.
func ValidArch() []string {
	return []string{
		ArchAMD64,
		ArchARM64,
		ArchI386,
		ArchARMHF,
		ArchPPC64EL,
		ArchS390X,
		ArchRISCV64,
		ArchMIPS64EL,
	}
}
