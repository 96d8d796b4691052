package contracts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/promakler/sitekit/pkg/iofs"
	"github.com/promakler/sitekit/pkg/manifest"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	return p
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	contracts := mkdir(t, root, "contracts")
	project := mkdir(t, root, "templates", "astro-template-system")
	deep := mkdir(t, root, "a", "b", "c", "d", "e", "f", "g")
	envDir := mkdir(t, t.TempDir(), "shared")

	tests := []struct {
		name  string
		env   string
		start string
		depth int
		want  string
		err   bool
	}{
		{name: "env wins", env: envDir, start: project, want: envDir},
		{name: "missing env falls back", env: filepath.Join(root, "nope"), start: project, want: contracts},
		{name: "walks up", start: project, want: contracts},
		{name: "start itself", start: root, want: contracts},
		{name: "depth exhausted", start: deep, depth: 6, err: true},
		{name: "deeper search", start: deep, depth: 8, want: contracts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindDir(tt.env, tt.start, tt.depth)
			if tt.err {
				if !errors.Is(err, ErrContractsNotFound) {
					t.Errorf("FindDir() error = %v, want ErrContractsNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyncSchemas(t *testing.T) {
	ctx := context.Background()
	contracts := t.TempDir()
	target := filepath.Join(t.TempDir(), "schema")

	if _, err := SyncSchemas(ctx, contracts, target); err == nil {
		t.Fatal("SyncSchemas() without site.schema.json should fail")
	}

	writeFile(t, filepath.Join(contracts, "schemas", "site.schema.json"), `{"title":"Site"}`)

	res, err := SyncSchemas(ctx, contracts, target)
	if err != nil {
		t.Fatalf("SyncSchemas() error = %v", err)
	}
	if !slices.Equal(res.Written, []string{SchemaJSON}) || !slices.Equal(res.Skipped, []string{SchemaTS}) {
		t.Errorf("result = %+v", res)
	}

	writeFile(t, filepath.Join(contracts, "schemas", "site.schema.ts"), "export const SiteSchema = {};\n")
	res, err = SyncSchemas(ctx, contracts, target)
	if err != nil {
		t.Fatalf("SyncSchemas() error = %v", err)
	}
	if !slices.Equal(res.Written, []string{SchemaTS}) || !slices.Equal(res.Unchanged, []string{SchemaJSON}) {
		t.Errorf("result = %+v", res)
	}

	got, err := os.ReadFile(filepath.Join(target, SchemaTS))
	if err != nil || string(got) != "export const SiteSchema = {};\n" {
		t.Errorf("synced ts = %q, %v", got, err)
	}
}

func TestPublishManifest(t *testing.T) {
	ctx := context.Background()
	project := t.TempDir()
	contracts := t.TempDir()
	manifestPath := filepath.Join(project, "schema", "template.manifest.json")

	_, err := PublishManifest(ctx, manifestPath, "astro-template-system", iofs.FromOS(contracts))
	if !errors.Is(err, ErrManifestMissing) {
		t.Fatalf("PublishManifest() error = %v, want ErrManifestMissing", err)
	}

	m := manifest.Build("astro-template-system", "Astro Template System", []manifest.Entry{
		{Type: "hero", Variants: []manifest.Variant{{Key: "A"}}},
	})
	if _, err := m.Write(manifestPath); err != nil {
		t.Fatal(err)
	}

	res, err := PublishManifest(ctx, manifestPath, "astro-template-system", iofs.FromOS(contracts))
	if err != nil {
		t.Fatalf("PublishManifest() error = %v", err)
	}
	if !slices.Equal(res.Written, []string{"templates/astro-template-system.manifest.json"}) {
		t.Errorf("Written = %v", res.Written)
	}

	want, _ := os.ReadFile(manifestPath)
	got, err := os.ReadFile(filepath.Join(contracts, "templates", "astro-template-system.manifest.json"))
	if err != nil || string(got) != string(want) {
		t.Errorf("published = %q, %v", got, err)
	}
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(filepath.Join(contracts, "templates", "astro-template-system.manifest.json"))
		if err != nil {
			t.Fatal(err)
		}
		if fi.Mode().Perm() != 0o644 {
			t.Errorf("published mode = %v, want 0644", fi.Mode().Perm())
		}
	}

	if _, err := PublishManifest(ctx, manifestPath, "../evil", iofs.FromOS(contracts)); err == nil {
		t.Error("PublishManifest() should reject a template id with a slash")
	}

	writeFile(t, manifestPath, `{"sections": []}`)
	if _, err := PublishManifest(ctx, manifestPath, "astro-template-system", iofs.FromOS(contracts)); !errors.Is(err, manifest.ErrInvalidManifest) {
		t.Errorf("PublishManifest() error = %v, want ErrInvalidManifest", err)
	}
}
