// Package testutil builds throwaway monorepo fixtures for tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Pkg describes a workspace package written by CreateMonorepo.
type Pkg struct {
	Name     string
	Location string
	Deps     []string
	// TSConfig is the initial tsconfig.json content. Empty means the package
	// has no tsconfig.json at all.
	TSConfig string
}

// CreateMonorepo writes a root package.json declaring the given packages as
// workspaces, a package.json per package, and the requested tsconfig files.
// rootTSConfig follows the same convention as Pkg.TSConfig. Returns the root.
func CreateMonorepo(t *testing.T, rootTSConfig string, pkgs ...Pkg) string {
	t.Helper()
	dir := t.TempDir()

	locations := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		locations = append(locations, p.Location)
	}
	writeJSON(t, filepath.Join(dir, "package.json"), map[string]any{
		"name":       "monorepo",
		"private":    true,
		"workspaces": locations,
	})
	if rootTSConfig != "" {
		WriteFile(t, filepath.Join(dir, "tsconfig.json"), rootTSConfig)
	}

	for _, p := range pkgs {
		deps := make(map[string]string, len(p.Deps))
		for _, d := range p.Deps {
			deps[d] = "*"
		}
		pkgDir := filepath.Join(dir, filepath.FromSlash(p.Location))
		writeJSON(t, filepath.Join(pkgDir, "package.json"), map[string]any{
			"name":         p.Name,
			"version":      "1.0.0",
			"dependencies": deps,
		})
		if p.TSConfig != "" {
			WriteFile(t, filepath.Join(pkgDir, "tsconfig.json"), p.TSConfig)
		}
	}
	return dir
}

// WorkspacesInfo renders pkgs the way `yarn --silent workspaces info` does.
// External dependencies are dropped, as yarn only reports workspace names.
func WorkspacesInfo(t *testing.T, pkgs ...Pkg) string {
	t.Helper()
	names := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		names[p.Name] = true
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, p := range pkgs {
		deps := []string{}
		for _, d := range p.Deps {
			if names[d] {
				deps = append(deps, d)
			}
		}
		entry, err := json.Marshal(map[string]any{
			"location":                        p.Location,
			"workspaceDependencies":           deps,
			"mismatchedWorkspaceDependencies": []string{},
		})
		if err != nil {
			t.Fatal(err)
		}
		key, _ := json.Marshal(p.Name)
		b.Write(key)
		b.WriteString(": ")
		b.Write(entry)
		if i < len(pkgs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// FakeYarn installs a yarn executable on PATH that prints workspacesInfo for
// `workspaces info` and a fixed version for `--version`.
func FakeYarn(t *testing.T, workspacesInfo string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yarn requires a POSIX shell")
	}
	bin := t.TempDir()
	infoPath := filepath.Join(bin, "workspaces-info.json")
	WriteFile(t, infoPath, workspacesInfo)

	script := `#!/bin/sh
for arg in "$@"; do
  case "$arg" in
    --version) echo "1.22.22"; exit 0 ;;
    fail) echo "fake yarn failure" >&2; exit 1 ;;
  esac
done
cat "` + infoPath + `"
`
	yarnPath := filepath.Join(bin, "yarn")
	if err := os.WriteFile(yarnPath, []byte(script), 0755); err != nil { //nolint:gosec // test executable
		t.Fatal(err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // test fixture
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test fixture
		t.Fatal(err)
	}
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test fixture
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	WriteFile(t, path, string(data)+"\n")
}
