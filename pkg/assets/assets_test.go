package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Len() != 33 {
		t.Errorf("Len() = %d, want 33", c.Len())
	}

	keys := c.Keys()
	if keys[0] != "heroBerlinSkyline" || keys[len(keys)-1] != "local.patternBg" {
		t.Errorf("Keys() order = %s ... %s", keys[0], keys[len(keys)-1])
	}

	if url, ok := c.Get("local.logo"); !ok || url != "/assets/images/logo.png" {
		t.Errorf("Get(local.logo) = %q, %v", url, ok)
	}
	if _, ok := c.Get("local"); ok {
		t.Error("group name should not be an asset")
	}
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"/assets/images/logo.png", true},
		{"https://images.unsplash.com/x.jpg", false},
		{"//cdn.example.com/x.jpg", false},
		{"assets/x.png", false},
	}
	for _, tt := range tests {
		if got := (Entry{URL: tt.url}).IsLocal(); got != tt.want {
			t.Errorf("IsLocal(%q) = %v", tt.url, got)
		}
	}
}

func TestCheck(t *testing.T) {
	public := t.TempDir()
	c := Default()

	missing := c.Check(public)
	local := 0
	for _, e := range c.Entries() {
		if e.IsLocal() {
			local++
		}
	}
	if len(missing) != local || local != 13 {
		t.Fatalf("Check() on empty dir = %d missing, %d local", len(missing), local)
	}

	for _, e := range c.Entries() {
		if !e.IsLocal() {
			continue
		}
		p := e.PublicPath(public)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Remove(filepath.Join(public, "assets", "images", "logo.png")); err != nil {
		t.Fatal(err)
	}

	missing = c.Check(public)
	if len(missing) != 1 || missing[0].Key != "local.logo" {
		t.Errorf("Check() = %+v", missing)
	}
	if want := filepath.Join(public, "assets", "images", "logo.png"); missing[0].Path != want {
		t.Errorf("Path = %q, want %q", missing[0].Path, want)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(map[string]string{
		"local.logo":  "/assets/images/mueller.svg",
		"zHeroCustom": "https://cdn.example.com/hero.jpg",
		"aExtra":      "/assets/extra.png",
		"blogFinance": "  ",
	})

	if url, _ := merged.Get("local.logo"); url != "/assets/images/mueller.svg" {
		t.Errorf("override not applied: %q", url)
	}
	if url, _ := base.Get("local.logo"); url != "/assets/images/logo.png" {
		t.Errorf("Merge mutated receiver: %q", url)
	}
	if url, _ := merged.Get("blogFinance"); url == "" {
		t.Error("blank override should be ignored")
	}

	keys := merged.Keys()
	if merged.Len() != base.Len()+2 {
		t.Fatalf("Len() = %d", merged.Len())
	}
	if keys[len(keys)-2] != "aExtra" || keys[len(keys)-1] != "zHeroCustom" {
		t.Errorf("appended keys = %v", keys[len(keys)-2:])
	}
}
