// Package assets is the catalog of images shared by section variants.
package assets

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// LocalGroup prefixes keys of assets that ship with the template.
const LocalGroup = "local"

// Entry is one named asset. Key is dotted for grouped assets, e.g.
// "local.logo".
type Entry struct {
	Key string
	URL string
}

// IsLocal reports whether the asset is served from the template's public
// directory rather than a remote host.
func (e Entry) IsLocal() bool {
	return strings.HasPrefix(e.URL, "/") && !strings.HasPrefix(e.URL, "//")
}

// PublicPath maps a local asset URL to its file below publicDir.
func (e Entry) PublicPath(publicDir string) string {
	return filepath.Join(publicDir, filepath.FromSlash(strings.TrimPrefix(e.URL, "/")))
}

// Catalog is an ordered name -> URL table.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

func newCatalog(entries []Entry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		c.set(e.Key, e.URL)
	}
	return c
}

func (c *Catalog) set(key, url string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].URL = url
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, URL: url})
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return newCatalog(defaultEntries)
}

// Get returns the URL stored under key.
func (c *Catalog) Get(key string) (string, bool) {
	i, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.entries[i].URL, true
}

// Keys lists the asset names in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Merge returns a copy of c with overrides applied. Existing keys keep their
// position; new keys are appended in sorted order. Empty values are ignored.
func (c *Catalog) Merge(overrides map[string]string) *Catalog {
	out := newCatalog(c.entries)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := strings.TrimSpace(overrides[k])
		if k == "" || v == "" {
			continue
		}
		out.set(k, v)
	}
	return out
}

// Missing is a local asset whose file does not exist.
type Missing struct {
	Entry
	Path string
}

// Check reports local assets that are absent from publicDir. Remote URLs are
// not fetched.
func (c *Catalog) Check(publicDir string) []Missing {
	var out []Missing
	for _, e := range c.entries {
		if !e.IsLocal() {
			continue
		}
		p := e.PublicPath(publicDir)
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			out = append(out, Missing{Entry: e, Path: p})
		}
	}
	return out
}
