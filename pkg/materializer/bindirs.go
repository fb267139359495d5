package materializer

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// DiscoverBinDirs lists every directory named bin or sbin below root as an
// absolute path inside the image, sorted.
func DiscoverBinDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root || !d.IsDir() || (d.Name() != "bin" && d.Name() != "sbin") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		dirs = append(dirs, "/"+filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}
