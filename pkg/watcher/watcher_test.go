package watcher

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitEvent(t *testing.T, w *Watcher, match func(Event) bool) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events:
			if match(ev) {
				return ev
			}
		case err := <-w.Errors:
			t.Logf("watch error: %v", err)
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestWatcherClassifiesChanges(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "src", "utils", "sectionRegistry.ts")
	sites := filepath.Join(root, "src", "content", "sites")
	writeFile(t, source, "export const SectionRegistry = {};\n")
	writeFile(t, filepath.Join(sites, "a.json"), "{}")

	w, err := New(Options{
		ConfigPath: filepath.Join(root, "sitekit.toml"),
		Debounce:   50 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	site := filepath.Join(sites, "a.json")
	writeFile(t, site, `{"meta": {}}`)
	ev := waitEvent(t, w, func(ev Event) bool { return len(ev.Content) > 0 })
	if !slices.Contains(ev.Content, site) || ev.Registry {
		t.Errorf("content event = %+v", ev)
	}
	if ev.Config == nil || ev.Config.Content.SitesDir != sites {
		t.Errorf("event config = %+v", ev.Config)
	}

	writeFile(t, source, "export const SectionRegistry = { hero: {} };\n")
	ev = waitEvent(t, w, func(ev Event) bool { return ev.Registry })
	if len(ev.Content) != 0 {
		t.Errorf("registry event = %+v", ev)
	}

	writeFile(t, filepath.Join(sites, "notes.md"), "ignored")
	writeFile(t, filepath.Join(root, "sitekit.toml"), "[template]\nid = \"t\"\n")
	ev = waitEvent(t, w, func(ev Event) bool {
		return ev.ConfigChanged && ev.Config.Template.ID == "t"
	})
	if slices.Contains(ev.Paths, filepath.Join(sites, "notes.md")) {
		t.Errorf("unmatched file reported: %v", ev.Paths)
	}
}
