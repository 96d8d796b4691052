package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promakler/sitekit/pkg/registry"
	"github.com/promakler/sitekit/pkg/transfer"
)

const fixture = "../schema/testdata/site.json"

func TestResolveInput(t *testing.T) {
	tests := []struct {
		env, flag, want string
	}{
		{"", "a.json", "a.json"},
		{"env.json", "a.json", "env.json"},
		{"  ", " a.json ", "a.json"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := ResolveInput(tt.env, tt.flag); got != tt.want {
			t.Errorf("ResolveInput(%q, %q) = %q", tt.env, tt.flag, got)
		}
	}
}

func TestSiteID(t *testing.T) {
	tests := []struct {
		input, id string
		want      string
		err       error
	}{
		{"/in/mueller-immobilien.de.json", "", "mueller-immobilien.de", nil},
		{"/in/site.yaml", "custom", "custom", nil},
		{"/in/.json", "", "", ErrNoID},
	}
	for _, tt := range tests {
		got, err := SiteID(tt.input, tt.id)
		if got != tt.want || !errors.Is(err, tt.err) {
			t.Errorf("SiteID(%q, %q) = %q, %v", tt.input, tt.id, got, err)
		}
	}
}

func TestImportSite(t *testing.T) {
	ctx := context.Background()
	target := filepath.Join(t.TempDir(), "src", "content", "sites", "generated")

	res, err := ImportSite(ctx, Request{
		Input:     fixture,
		ID:        "mueller",
		TargetDir: target,
		Validate:  true,
		Registry:  registry.Default(),
	})
	if err != nil {
		t.Fatalf("ImportSite() error = %v", err)
	}
	if !res.Changed || res.ID != "mueller" || len(res.Unresolved) != 0 {
		t.Errorf("result = %+v", res)
	}

	want, _ := os.ReadFile(fixture)
	got, err := os.ReadFile(filepath.Join(target, "mueller.json"))
	if err != nil || string(got) != string(want) {
		t.Errorf("imported file differs: %v", err)
	}

	asked := ""
	_, err = ImportSite(ctx, Request{
		Input:     fixture,
		ID:        "mueller",
		TargetDir: target,
		Confirm: func(p string) (bool, error) {
			asked = p
			return false, nil
		},
	})
	if !errors.Is(err, ErrDeclined) || asked != filepath.Join(target, "mueller.json") {
		t.Errorf("declined import: err = %v, asked = %q", err, asked)
	}

	res, err = ImportSite(ctx, Request{
		Input:     fixture,
		ID:        "mueller",
		TargetDir: target,
		Force:     true,
		Confirm: func(string) (bool, error) {
			t.Error("Confirm called despite Force")
			return false, nil
		},
	})
	if err != nil || res.Changed {
		t.Errorf("forced identical import = %+v, %v", res, err)
	}
}

func TestImportSiteErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"meta":{"template":"x"},"pages":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no input", Request{TargetDir: dir}, ErrNoInput},
		{"invalid site", Request{Input: invalid, TargetDir: filepath.Join(dir, "out"), Validate: true}, ErrInvalidSite},
		{"escaping id", Request{Input: fixture, ID: "../escape", TargetDir: filepath.Join(dir, "out")}, transfer.ErrUnsafePath},
		{"missing input", Request{Input: filepath.Join(dir, "nope.json"), TargetDir: dir}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportSite(ctx, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("ImportSite() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "out", "invalid.json")); !errors.Is(err, os.ErrNotExist) {
		t.Error("invalid site must not be copied")
	}
}

func TestImportYAML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "beispiel.yml")
	if err := os.WriteFile(input, []byte("meta:\n  domain: beispiel.de\n  brand:\n    name: Müller & Söhne\npages: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := ImportSite(context.Background(), Request{Input: input, TargetDir: filepath.Join(dir, "generated")})
	if err != nil {
		t.Fatalf("ImportSite() error = %v", err)
	}

	raw, err := os.ReadFile(res.Target)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("converted file is not JSON: %v", err)
	}
	if doc["meta"].(map[string]any)["domain"] != "beispiel.de" {
		t.Errorf("doc = %v", doc)
	}
	if !strings.Contains(string(raw), `"name": "Müller & Söhne"`) || !strings.HasSuffix(string(raw), "}\n") {
		t.Errorf("converted file = %s", raw)
	}
	if filepath.Base(res.Target) != "beispiel.json" {
		t.Errorf("target = %q", res.Target)
	}
}
