package iofs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/promakler/sitekit/pkg/utils/fileutils"
)

// FromFS wraps any fs.FS.
func FromFS(fsys fs.FS, root string) *FS {
	return &FS{fs: fsys, root: root}
}

type FS struct {
	fs   fs.FS
	root string
}

func (f *FS) FS(ctx context.Context) (fs.FS, error) {
	return f.fs, nil
}

func (f *FS) Root() string {
	return f.root
}

func (f *FS) Close() error {
	return nil
}

// FromOS wraps a directory on disk. It is both a source and a destination.
func FromOS(path string) *OSFS {
	return &OSFS{path: path}
}

type OSFS struct {
	path string
}

func (o *OSFS) FS(ctx context.Context) (fs.FS, error) {
	return os.DirFS(o.path), nil
}

func (o *OSFS) Root() string {
	return o.path
}

func (o *OSFS) Close() error {
	return nil
}

func (o *OSFS) EnsureRoot(ctx context.Context) error {
	info, err := os.Stat(o.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(o.path, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", o.path, err)
			}
			return nil
		}
		return fmt.Errorf("failed to stat directory %q: %w", o.path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", o.path)
	}
	return nil
}

func (o *OSFS) MkdirAll(rel string, perm fs.FileMode) error {
	return os.MkdirAll(o.full(rel), perm)
}

func (o *OSFS) Exists(ctx context.Context, rel string) (bool, error) {
	info, err := os.Stat(o.full(rel))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", o.DisplayPath(rel))
	}
	return true, nil
}

func (o *OSFS) Write(ctx context.Context, rel string, gen WriterFunc) (bool, error) {
	return fileutils.AtomicEdit(o.full(rel), gen)
}

func (o *OSFS) DisplayPath(rel string) string {
	return o.full(rel)
}

func (o *OSFS) full(rel string) string {
	return filepath.Join(o.path, filepath.FromSlash(rel))
}
