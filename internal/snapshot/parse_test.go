package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_valid(t *testing.T) {
	data := []byte(`
version: 1
generated_at: "2026-02-15T12:34:56+09:00"
tool_version: "0.1.0"
packages:
  "@scope/core":
    location: packages/core
  "@scope/app":
    location: packages/app
    workspace_dependencies: ["@scope/core"]
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ToolVersion != "0.1.0" {
		t.Errorf("tool_version = %q, want %q", f.ToolVersion, "0.1.0")
	}
	if len(f.Packages) != 2 {
		t.Errorf("packages count = %d, want 2", len(f.Packages))
	}
	app := f.Packages["@scope/app"]
	if app == nil {
		t.Fatal("@scope/app not found")
	}
	if len(app.WorkspaceDependencies) != 1 || app.WorkspaceDependencies[0] != "@scope/core" {
		t.Errorf("workspace_dependencies = %v", app.WorkspaceDependencies)
	}
}

func TestParse_unsupportedVersion(t *testing.T) {
	if _, err := Parse([]byte("version: 2\npackages: {}\n")); err == nil {
		t.Fatal("expected error for version 2")
	}
}

func TestParse_missingLocation(t *testing.T) {
	data := []byte(`
version: 1
packages:
  a: {}
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for missing location")
	}
}

func TestParse_invalidYAML(t *testing.T) {
	if _, err := Parse([]byte(":::invalid")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestNames_sorted(t *testing.T) {
	f := &File{Packages: map[string]*Package{
		"zeta":  {Location: "packages/zeta"},
		"alpha": {Location: "packages/alpha"},
		"mid":   {Location: "packages/mid"},
	}}
	got := f.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	f := &File{
		Version:     Version,
		GeneratedAt: "2026-01-01T00:00:00Z",
		ToolVersion: "dev",
		Packages: map[string]*Package{
			"pkg-a": {Location: "packages/a", WorkspaceDependencies: []string{"pkg-b"}},
			"pkg-b": {Location: "packages/b"},
		},
	}

	if err := Save(path, f); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal("file should exist after save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Packages["pkg-a"].Location != "packages/a" {
		t.Errorf("location = %q, want %q", loaded.Packages["pkg-a"].Location, "packages/a")
	}
	if len(loaded.Packages["pkg-b"].WorkspaceDependencies) != 0 {
		t.Errorf("pkg-b should have no dependencies, got %v", loaded.Packages["pkg-b"].WorkspaceDependencies)
	}
}
