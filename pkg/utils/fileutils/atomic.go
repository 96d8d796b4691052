package fileutils

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMode is the permission given to files AtomicEdit creates.
const DefaultMode fs.FileMode = 0o644

// AtomicEdit writes a file atomically through a temporary sibling, leaving it
// untouched when the generated content matches what is already on disk. An
// existing file keeps its permissions; a new one gets DefaultMode. It reports
// whether the file changed.
func AtomicEdit(path string, gen func(w io.Writer) error) (bool, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return false, err
	}
	defer func(tmp *os.File) {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}(tmp)

	if err := gen(tmp); err != nil {
		return false, err
	}
	if err := tmp.Sync(); err != nil {
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	eq, err := sameContent(tmp.Name(), path)
	if err != nil {
		return false, err
	}
	if eq {
		return false, nil
	}

	mode := DefaultMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return false, err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	if df, err := os.Open(dir); err == nil {
		_ = df.Sync()
		_ = df.Close()
	}

	return true, nil
}

// sameContent compares two files; a missing b is reported as different.
func sameContent(a, b string) (bool, error) {
	bFi, err := os.Stat(b)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	aFi, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	if aFi.Size() != bFi.Size() || bFi.IsDir() {
		return false, nil
	}

	aData, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	bData, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(aData, bData), nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
