package manifest

import (
	"time"

	"github.com/fbkclanna/tsrefs/internal/snapshot"
)

// ToSnapshot records the registry so it can be replayed by SnapshotResolver.
func ToSnapshot(r *Registry, toolVersion string, now time.Time) *snapshot.File {
	f := &snapshot.File{
		Version:     snapshot.Version,
		GeneratedAt: now.Format(time.RFC3339),
		ToolVersion: toolVersion,
		Packages:    make(map[string]*snapshot.Package, r.Len()),
	}
	for _, p := range r.Packages() {
		f.Packages[p.Name] = &snapshot.Package{
			Location:              p.Location,
			WorkspaceDependencies: append([]string(nil), p.Dependencies...),
		}
	}
	return f
}

// FromSnapshot converts a snapshot into packages ordered by name.
func FromSnapshot(f *snapshot.File) []Package {
	pkgs := make([]Package, 0, len(f.Packages))
	for _, name := range f.Names() {
		sp := f.Packages[name]
		pkgs = append(pkgs, Package{
			Name:         name,
			Location:     sp.Location,
			Dependencies: append([]string(nil), sp.WorkspaceDependencies...),
		})
	}
	return pkgs
}
