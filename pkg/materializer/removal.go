package materializer

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/fsutil"
)

// PurgeLast lists base system packages in the order they can be purged
// without breaking the tools the purge itself depends on. Requested packages
// outside this list are purged before any of these.
var PurgeLast = []string{
	"libpam-runtime",
	"sysvinit-utils",
	"findutils",
	"diffutils",
	"gzip",
	"hostname",
	"sysv-rc",
	"passwd",
	"base-passwd",
	"libc-bin",
	"grep",
	"sed",
	"gawk",
	"bash",
	"coreutils",
	"dpkg",
	"dash",
	"base-files",
}

const purgeCommand = "dpkg --purge --force-depends --force-remove-essential"

// RemovalScript renders a shell script purging names.
func RemovalScript(names []string) string {
	late := make(map[string]bool, len(PurgeLast))
	for _, n := range PurgeLast {
		late[n] = true
	}
	requested := make(map[string]bool, len(names))

	var b strings.Builder
	b.WriteString("#!/bin/sh\nset -e\n")
	for _, n := range names {
		if n == "" || requested[n] {
			continue
		}
		requested[n] = true
		if !late[n] {
			fmt.Fprintf(&b, "%s %s\n", purgeCommand, n)
		}
	}
	for _, n := range PurgeLast {
		if requested[n] {
			fmt.Fprintf(&b, "%s %s\n", purgeCommand, n)
		}
	}
	return b.String()
}

// WriteRemovalScript writes the removal script for names to scripts/remove.sh
// below root and returns its path.
func WriteRemovalScript(root string, names []string) (string, error) {
	path := fsutil.JoinSlash(root, RemovalPath)
	if err := fsutil.WriteFileAtomic(path, []byte(RemovalScript(names)), fsutil.FileModeExec); err != nil {
		return "", fmt.Errorf("failed to write removal script: %w", err)
	}
	return path, nil
}
