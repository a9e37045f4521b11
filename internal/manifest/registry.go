package manifest

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Registry maps package names to workspace packages. It keeps the order in
// which the resolver reported packages so that every run is deterministic.
// A Registry is never mutated after NewRegistry returns.
type Registry struct {
	names  []string
	byName map[string]Package
}

// NewRegistry validates pkgs and builds a registry from them.
func NewRegistry(pkgs []Package) (*Registry, error) {
	r := &Registry{
		names:  make([]string, 0, len(pkgs)),
		byName: make(map[string]Package, len(pkgs)),
	}
	for i, p := range pkgs {
		if p.Name == "" {
			return nil, fmt.Errorf("manifest: packages[%d].name is required", i)
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("manifest: duplicate package name %q", p.Name)
		}
		loc, err := normalizeLocation(p.Location, p.Name)
		if err != nil {
			return nil, err
		}
		p.Location = loc
		p.Dependencies = append([]string(nil), p.Dependencies...)
		p.Root = false
		r.names = append(r.names, p.Name)
		r.byName[p.Name] = p
	}
	return r, nil
}

// Lookup returns the workspace package with the given name. A miss means the
// name is an external dependency.
func (r *Registry) Lookup(name string) (Package, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns package names in registry order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Packages returns all packages in registry order.
func (r *Registry) Packages() []Package {
	out := make([]Package, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.byName[n])
	}
	return out
}

// Len returns the number of workspace packages.
func (r *Registry) Len() int { return len(r.names) }

// Root synthesizes the aggregate that stands for the whole repository: it
// lives at the repository root and depends on every workspace package.
func (r *Registry) Root() Package {
	return Package{
		Location:     RootLocation,
		Dependencies: r.Names(),
		Root:         true,
	}
}

// normalizeLocation converts loc to a clean slash-separated path and ensures
// it is relative and stays inside the repository.
func normalizeLocation(loc, label string) (string, error) {
	if loc == "" {
		return "", fmt.Errorf("manifest: %s: location is required", label)
	}
	if filepath.IsAbs(loc) || path.IsAbs(filepath.ToSlash(loc)) {
		return "", fmt.Errorf("manifest: %s: absolute location is not allowed: %s", label, loc)
	}
	cleaned := path.Clean(filepath.ToSlash(loc))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("manifest: %s: location must not escape the repository: %s", label, loc)
	}
	return cleaned, nil
}
