package fileutils

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

func TestAtomicEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "file.json")
	gen := func(content string) func(w io.Writer) error {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	changed, err := AtomicEdit(path, gen("one"))
	if err != nil || !changed {
		t.Fatalf("first AtomicEdit() = %v, %v", changed, err)
	}
	changed, err = AtomicEdit(path, gen("one"))
	if err != nil || changed {
		t.Fatalf("identical AtomicEdit() = %v, %v", changed, err)
	}
	changed, err = AtomicEdit(path, gen("two"))
	if err != nil || !changed {
		t.Fatalf("changed AtomicEdit() = %v, %v", changed, err)
	}

	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, []byte("two")) {
		t.Errorf("content = %q", got)
	}
}

func TestAtomicEditMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	dir := t.TempDir()
	write := func(w io.Writer) error {
		_, err := io.WriteString(w, "{}")
		return err
	}

	created := filepath.Join(dir, "created.json")
	if _, err := AtomicEdit(created, write); err != nil {
		t.Fatalf("AtomicEdit() error = %v", err)
	}
	if got := perm(t, created); got != DefaultMode {
		t.Errorf("new file mode = %v, want %v", got, DefaultMode)
	}

	kept := filepath.Join(dir, "kept.json")
	if err := os.WriteFile(kept, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(kept, 0o640); err != nil {
		t.Fatal(err)
	}
	if _, err := AtomicEdit(kept, write); err != nil {
		t.Fatalf("AtomicEdit() error = %v", err)
	}
	if got := perm(t, kept); got != 0o640 {
		t.Errorf("existing file mode = %v, want 0640", got)
	}
}

func perm(t *testing.T, path string) fs.FileMode {
	t.Helper()
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return fi.Mode().Perm()
}

func TestGlobAndMatch(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"a.json", "generated/b.json", "notes.md"} {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Glob(root, "**/*.json")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	want := []string{filepath.Join(root, "a.json"), filepath.Join(root, "generated", "b.json")}
	if !slices.Equal(got, want) {
		t.Errorf("Glob() = %v, want %v", got, want)
	}

	if got, err := Glob(filepath.Join(root, "missing"), "**/*.json"); err != nil || got != nil {
		t.Errorf("Glob(missing) = %v, %v", got, err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "generated", "b.json"), true},
		{filepath.Join(root, "notes.md"), false},
		{filepath.Join(filepath.Dir(root), "outside.json"), false},
	}
	for _, tt := range tests {
		if got := Match(root, "**/*.json", tt.path); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
