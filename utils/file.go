package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnsureDirs creates all directories with 0o750 permissions.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ValidFile returns true if path is a regular file with size > 0.
func ValidFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// FirstGlobMatch returns the first regular file under dir matching pattern,
// in sort order, or "" when nothing matches.
func FirstGlobMatch(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)
	for _, m := range matches {
		if ValidFile(m) {
			return m, nil
		}
	}
	return "", nil
}
