package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/fetchy/pkg/errors"
)

// ExclusionFileSuffix marks an exclude entry as a file of package names.
const ExclusionFileSuffix = ".txt"

// ReadExclusions expands entries into package names. Entries ending in .txt
// name files holding one package per line; blank lines and lines starting
// with # are ignored. Relative file paths are resolved against baseDir.
func ReadExclusions(entries []string, baseDir string) ([]string, error) {
	var names []string
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.HasSuffix(entry, ExclusionFileSuffix) {
			names = append(names, entry)
			continue
		}
		path := entry
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		fromFile, err := readExclusionFile(path)
		if err != nil {
			return nil, err
		}
		names = append(names, fromFile...)
	}
	return names, nil
}

func readExclusionFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrExclusionFile, err)
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errors.ErrExclusionFile, path, err)
	}
	return names, nil
}
