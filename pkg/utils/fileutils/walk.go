package fileutils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob matches a doublestar pattern below root and returns the matching
// regular files as sorted paths joined with root.
func Glob(root, pattern string) ([]string, error) {
	if !IsDir(root) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(pattern), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(root, filepath.FromSlash(m)))
	}
	slices.Sort(out)

	return out, nil
}

// Match reports whether the path relative to root matches the pattern.
func Match(root, pattern, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	ok, err := doublestar.Match(filepath.ToSlash(pattern), filepath.ToSlash(rel))
	return err == nil && ok
}
