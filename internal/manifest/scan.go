package manifest

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// dependencyFields are the package.json sections that declare dependencies,
// in the order their entries are collected.
var dependencyFields = []string{
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
}

// ScanResolver discovers workspaces from the root package.json without
// invoking a package manager. Unlike yarn, it reports every declared
// dependency; names outside the workspace are filtered later.
type ScanResolver struct {
	Dir string
}

// Resolve scans the repository rooted at Dir.
func (s *ScanResolver) Resolve(_ context.Context) (*Registry, error) {
	pkgs, err := Scan(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	return NewRegistry(pkgs)
}

// Scan expands the root package.json "workspaces" patterns under dir and reads
// every matched package.json. Patterns use filepath.Glob syntax; a leading "!"
// excludes matching locations. Results are ordered by location.
func Scan(dir string) ([]Package, error) {
	rootManifest := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(rootManifest) //nolint:gosec // repository root package.json
	if err != nil {
		return nil, fmt.Errorf("reading root package.json: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing %s: invalid JSON", rootManifest)
	}

	patterns := gjson.GetBytes(data, "workspaces")
	if patterns.IsObject() {
		patterns = patterns.Get("packages")
	}
	if !patterns.IsArray() {
		return nil, fmt.Errorf("%s declares no workspaces", rootManifest)
	}

	var include, exclude []string
	for _, p := range patterns.Array() {
		if neg, ok := strings.CutPrefix(p.String(), "!"); ok {
			exclude = append(exclude, path.Clean(neg))
			continue
		}
		include = append(include, p.String())
	}

	seen := make(map[string]bool)
	var pkgs []Package
	for _, pattern := range include {
		matches, err := filepath.Glob(filepath.Join(dir, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("workspace pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			p, ok, err := readWorkspacePackage(dir, m)
			if err != nil {
				return nil, err
			}
			if !ok || seen[p.Location] || isExcluded(p.Location, exclude) {
				continue
			}
			seen[p.Location] = true
			pkgs = append(pkgs, p)
		}
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Location < pkgs[j].Location })
	return pkgs, nil
}

// readWorkspacePackage reads dir/package.json. ok is false when pkgDir is not
// a directory, has no package.json, or the package has no name.
func readWorkspacePackage(root, pkgDir string) (Package, bool, error) {
	info, err := os.Stat(pkgDir)
	if err != nil || !info.IsDir() {
		return Package{}, false, nil
	}
	manifestPath := filepath.Join(pkgDir, "package.json")
	data, err := os.ReadFile(manifestPath) //nolint:gosec // path comes from workspace patterns
	if err != nil {
		if os.IsNotExist(err) {
			return Package{}, false, nil
		}
		return Package{}, false, fmt.Errorf("reading %s: %w", manifestPath, err)
	}
	if !gjson.ValidBytes(data) {
		return Package{}, false, fmt.Errorf("parsing %s: invalid JSON", manifestPath)
	}
	name := gjson.GetBytes(data, "name").String()
	if name == "" {
		return Package{}, false, nil
	}
	rel, err := filepath.Rel(root, pkgDir)
	if err != nil {
		return Package{}, false, fmt.Errorf("locating %s: %w", pkgDir, err)
	}
	return Package{
		Name:         name,
		Location:     filepath.ToSlash(rel),
		Dependencies: declaredDependencies(data),
	}, true, nil
}

func declaredDependencies(data []byte) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, field := range dependencyFields {
		gjson.GetBytes(data, field).ForEach(func(key, _ gjson.Result) bool {
			name := key.String()
			if !seen[name] {
				seen[name] = true
				deps = append(deps, name)
			}
			return true
		})
	}
	return deps
}

func isExcluded(loc string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, loc); ok {
			return true
		}
	}
	return false
}
