package iofs

import (
	"context"
	"io"
	"io/fs"
)

// Readable represents an arbitrary readable source.
type Readable interface {
	FS(context.Context) (fs.FS, error)
	Root() string
	Close() error
}

// WriterFunc writes a destination file to the provided writer.
type WriterFunc func(w io.Writer) error

// Writable abstracts the destination of copied files. Paths are slash
// separated and relative to the destination root.
// Implementations must be safe for concurrent Write calls.
type Writable interface {
	EnsureRoot(ctx context.Context) error
	MkdirAll(rel string, perm fs.FileMode) error
	Exists(ctx context.Context, rel string) (bool, error)
	// Write replaces rel with the generated content and reports whether the
	// stored content changed.
	Write(ctx context.Context, rel string, gen WriterFunc) (bool, error)
	DisplayPath(rel string) string
}
