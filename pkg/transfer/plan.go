// Package transfer copies files from a source tree to a destination as a
// checked plan: conflicting and escaping targets are rejected before
// anything is written.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/promakler/sitekit/pkg/iofs"
	"github.com/promakler/sitekit/pkg/utils/set"
	"golang.org/x/sync/errgroup"
)

var (
	ErrConflicts     = errors.New("conflicts")
	ErrUnsafePath    = errors.New("unsafe target path")
	ErrMissingSource = errors.New("missing source")
)

// Copy is a claim on a destination path. Content comes from Builder when
// set, else from Source in the plan's source tree.
type Copy struct {
	Owner    string
	Source   string
	Target   string
	Optional bool
	Builder  iofs.WriterFunc
}

func (c Copy) String() string {
	if c.Source == "" {
		return fmt.Sprintf("%s -> %s", c.Owner, c.Target)
	}
	return fmt.Sprintf("%s: %s -> %s", c.Owner, c.Source, c.Target)
}

// Plan collects copies. Emit is safe for concurrent use.
type Plan struct {
	copies []Copy
	mu     sync.Mutex
}

func New() *Plan {
	return &Plan{}
}

// Emit adds a copy to the plan.
func (p *Plan) Emit(c Copy) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.copies = append(p.copies, c)
}

func (p *Plan) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.copies)
}

// Result lists destination paths by outcome, sorted.
type Result struct {
	Written   []string
	Unchanged []string
	Skipped   []string
}

type Options struct {
	// MaxWorkers bounds concurrent writes; zero means unbounded.
	MaxWorkers int
}

// Execute checks the plan and writes every copy to dst. src may be nil when
// every copy has a Builder.
func (p *Plan) Execute(ctx context.Context, src iofs.Readable, dst iofs.Writable, opts Options) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	copies, conflicts := makeCopies(p.copies)
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConflicts, describeConflicts(conflicts))
	}

	cleaned := make(map[string]Copy, len(copies))
	for target, c := range copies {
		rel := path.Clean(filepath.ToSlash(target))
		if rel == "." || path.IsAbs(rel) || isRel(rel) {
			return nil, fmt.Errorf("%w: %q escapes %s", ErrUnsafePath, target, dst.DisplayPath("."))
		}
		c.Target = rel
		cleaned[rel] = c
	}
	copies = cleaned

	res := &Result{}

	var srcFS fs.FS
	for target, c := range copies {
		if c.Builder != nil {
			continue
		}
		if srcFS == nil {
			if src == nil {
				return nil, fmt.Errorf("%w: %s has no source tree", ErrMissingSource, c)
			}
			var err error
			if srcFS, err = src.FS(ctx); err != nil {
				return nil, err
			}
		}

		info, err := fs.Stat(srcFS, c.Source)
		switch {
		case err == nil && !info.IsDir():
			c.Builder = copyFrom(srcFS, c.Source)
			copies[target] = c
		case err == nil || errors.Is(err, fs.ErrNotExist):
			if !c.Optional {
				return nil, fmt.Errorf("%w: %s", ErrMissingSource, path.Join(filepath.ToSlash(src.Root()), c.Source))
			}
			res.Skipped = append(res.Skipped, target)
			delete(copies, target)
		default:
			return nil, err
		}
	}

	if err := dst.EnsureRoot(ctx); err != nil {
		return nil, err
	}

	for _, rel := range set.Sorted(targetDirs(copies)) {
		if rel == "." {
			continue
		}
		if err := dst.MkdirAll(rel, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dst.DisplayPath(rel), err)
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	if opts.MaxWorkers > 0 {
		g.SetLimit(opts.MaxWorkers)
	}

	for target, c := range copies {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			changed, err := dst.Write(ctx, target, c.Builder)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", dst.DisplayPath(target), err)
			}

			mu.Lock()
			defer mu.Unlock()
			if changed {
				res.Written = append(res.Written, target)
			} else {
				res.Unchanged = append(res.Unchanged, target)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(res.Written)
	slices.Sort(res.Unchanged)
	slices.Sort(res.Skipped)
	return res, nil
}

func copyFrom(fsys fs.FS, name string) iofs.WriterFunc {
	return func(w io.Writer) error {
		f, err := fsys.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	}
}

func describeConflicts(conflicts map[string][]Copy) string {
	targets := make([]string, 0, len(conflicts))
	for t := range conflicts {
		targets = append(targets, t)
	}
	slices.Sort(targets)

	parts := make([]string, len(targets))
	for i, t := range targets {
		owners := make([]string, len(conflicts[t]))
		for j, c := range conflicts[t] {
			owners[j] = c.Owner
		}
		parts[i] = fmt.Sprintf("%s claimed by %s", t, strings.Join(owners, ", "))
	}
	return strings.Join(parts, "; ")
}
