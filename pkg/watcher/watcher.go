// Package watcher reports debounced changes to the files a template project
// derives its manifest and content checks from.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/promakler/sitekit/pkg/config"
	"github.com/promakler/sitekit/pkg/utils/fileutils"
	"github.com/promakler/sitekit/pkg/utils/set"
)

// Event is a batch of changes collected during one debounce window.
type Event struct {
	Reason string
	Paths  []string

	// Config is the config in effect when the event was sent.
	Config *config.Config
	// ConfigChanged is set when the config file changed. The watch list has
	// already been rebuilt from the new config.
	ConfigChanged bool
	// Registry is set when the section registry source changed.
	Registry bool
	// Content lists the changed site content files.
	Content []string
}

type Options struct {
	ConfigPath string
	// Root is the base for relative config paths. Defaults to the directory
	// of ConfigPath.
	Root     string
	Debounce time.Duration
}

func New(opts Options) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if opts.Root == "" {
		opts.Root = filepath.Dir(opts.ConfigPath)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}

	return &Watcher{
		watcher:    w,
		debounce:   opts.Debounce,
		configPath: filepath.Clean(opts.ConfigPath),
		root:       opts.Root,
		Events:     make(chan Event, 64),
		Errors:     make(chan error, 64),
	}, nil
}

type Watcher struct {
	Events chan Event
	Errors chan error

	watcher  *fsnotify.Watcher
	debounce time.Duration

	configPath string
	root       string
	cfg        *config.Config
	watched    *set.Set[string]
}

func (w *Watcher) Start(ctx context.Context) error {
	w.watched = set.New[string]()
	w.rebuild()

	go w.loop(ctx)

	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = set.New[string]()
		event   Event
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	flush := func() {
		if pending.Len() == 0 {
			return
		}
		event.Paths = set.Sorted(pending)
		event.Config = w.cfg
		event.Reason = fmt.Sprintf("%d change(s), %s quiet", len(event.Paths), w.debounce)
		pending.Clear()

		lazySend(w.Events, event)
		event = Event{}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if !w.classify(ev, &event) {
				continue
			}
			pending.Add(filepath.Clean(ev.Name))
			resetTimer()

		case <-timerCh:
			timer = nil
			timerCh = nil
			flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			lazySend(w.Errors, fmt.Errorf("watch error: %w", err))
		}
	}
}

// classify records ev on event and reports whether it is relevant.
func (w *Watcher) classify(ev fsnotify.Event, event *Event) bool {
	name := filepath.Clean(ev.Name)

	switch {
	case name == w.configPath:
		w.rebuild()
		event.ConfigChanged = true
		return true

	case name == filepath.Clean(w.cfg.Registry.Source):
		event.Registry = true
		return true
	}

	if ev.Op&fsnotify.Create == fsnotify.Create && w.isContentDir(name) {
		w.addDirectoryIfNeeded(name)
	}

	if fileutils.Match(w.cfg.Content.SitesDir, w.cfg.Content.Glob, name) {
		if !slices.Contains(event.Content, name) {
			event.Content = append(event.Content, name)
		}
		return true
	}

	return false
}

func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.addWatch(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if base := d.Name(); path != root && (base == "node_modules" || base[0] == '.') {
			return filepath.SkipDir
		}

		return w.addWatch(path)
	})
}

// addWatch watches a directory. Files are watched through their parent so
// that editors replacing a file by rename are still seen.
func (w *Watcher) addWatch(path string) error {
	if w.watched == nil {
		w.watched = set.New[string]()
	}
	normalized := filepath.Clean(path)
	if w.watched.Has(normalized) {
		return nil
	}
	if err := w.watcher.Add(normalized); err != nil {
		return err
	}
	w.watched.Add(normalized)
	return nil
}

func (w *Watcher) removeAllWatches() {
	if w.watched == nil {
		return
	}
	for _, path := range w.watched.Values() {
		if err := w.watcher.Remove(path); err != nil {
			lazySend(w.Errors, fmt.Errorf("failed to remove watch: %w", err))
		}
	}
	w.watched.Clear()
}

func (w *Watcher) rebuild() {
	cfg, err := config.LoadOrDefault(w.configPath)
	if err != nil {
		lazySend(w.Errors, fmt.Errorf("failed to reload config: %w", err))
		if w.cfg != nil {
			return
		}
		cfg = config.DefaultConfig()
		_ = cfg.Validate()
	}
	cfg.ResolvePaths(w.root)
	w.cfg = cfg

	w.removeAllWatches()
	if err := w.addWatch(filepath.Dir(w.configPath)); err != nil {
		lazySend(w.Errors, fmt.Errorf("failed to watch config: %w", err))
	}
	for _, path := range cfg.WatchedPaths() {
		if err := w.addTree(path); err != nil {
			lazySend(w.Errors, fmt.Errorf("failed to watch %s: %w", path, err))
		}
	}
}

func (w *Watcher) isContentDir(path string) bool {
	rel, err := filepath.Rel(w.cfg.Content.SitesDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) addDirectoryIfNeeded(path string) {
	if !fileutils.IsDir(path) {
		return
	}
	if err := w.addTree(path); err != nil {
		lazySend(w.Errors, fmt.Errorf("failed to watch new directory: %w", err))
	}
}
