package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// HookFileExtension is the extension hook scripts must carry.
const HookFileExtension = ".tengo"

// LoadHooks registers the scripts of a hook-type to paths mapping, as found
// in the hooks section of the config. Types are processed in firing order,
// scripts in the order listed. Relative paths are resolved against baseDir.
func LoadHooks(manager HookManager, scripts map[string][]string, baseDir string) error {
	types := make([]string, 0, len(scripts))
	for t := range scripts {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		for _, path := range scripts[t] {
			if filepath.Ext(path) != HookFileExtension {
				return fmt.Errorf("%w: %s: expected a %s script", ErrHookLoad, path, HookFileExtension)
			}
			if !filepath.IsAbs(path) && baseDir != "" {
				path = filepath.Join(baseDir, path)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrHookLoad, err)
			}
			if err := manager.AddHook(Hook{Type: HookType(t), Name: path, Content: string(content)}); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrHookLoad, path, err)
			}
		}
	}
	return nil
}

// HookTemplate generates a starting point for a hook script.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PostResolve:
		return `// Post-resolve hook
// Runs after the package closure is computed, before anything is downloaded.
// Available variables:
// - distribution, codename, architecture: string
// - packages: array of {name, version, architecture} in unpack order
// Set err to a non-empty string to abort the run.

fmt := import("fmt")

for p in packages {
    fmt.println(p.name, " ", p.version)
}
`

	case PostMaterialize:
		return `// Post-materialize hook
// Runs after every package is unpacked into the root.
// Available variables: same as post-resolve, plus
// - root: string - the target directory
// - binDirs: array of directories named bin or sbin inside the root

os := import("os")
text := import("text")

f := os.create(root + "/etc/environment")
if is_error(f) {
    err = string(f)
} else {
    f.write_string("PATH=" + text.join(binDirs, ":") + "\n")
    f.close()
}
`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
