package snapshot

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads a snapshot file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured snapshot path
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return Parse(data)
}

// Parse parses snapshot content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing snapshot YAML: %w", err)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version: %d (expected %d)", f.Version, Version)
	}
	for name, p := range f.Packages {
		if p == nil || p.Location == "" {
			return nil, fmt.Errorf("snapshot: packages.%s.location is required", name)
		}
	}
	return &f, nil
}

// Save writes the snapshot file to disk.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // snapshot is committed alongside the sources
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Names returns the recorded package names in sorted order. YAML mappings do
// not keep insertion order, so sorting is what makes runs reproducible.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Packages))
	for n := range f.Packages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
