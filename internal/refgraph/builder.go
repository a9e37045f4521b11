package refgraph

import (
	"os"
	"path"
	"path/filepath"

	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/rs/zerolog"
)

// Builder computes the references of workspace packages against a registry.
type Builder struct {
	Registry *manifest.Registry
	// RootDir is the repository root on disk; locations are resolved against it.
	RootDir string
	// ConfigName is the build configuration file name, e.g. tsconfig.json.
	ConfigName string
	// LegacySelfPath reproduces an old defect where every reference pointed
	// from the package to itself, collapsing to ".".
	LegacySelfPath bool
	Logger         zerolog.Logger
}

// References returns the reference paths for pkg in dependency order.
// Dependencies missing from the registry are external and skipped, as are
// workspace dependencies without a build configuration of their own.
func (b *Builder) References(pkg manifest.Package) []string {
	refs := NewPathSet()
	for _, name := range pkg.Dependencies {
		dep, ok := b.Registry.Lookup(name)
		if !ok {
			b.Logger.Debug().Str("package", pkg.DisplayName()).Str("dependency", name).Msg("skipping external dependency")
			continue
		}
		if !b.HasConfig(dep) {
			b.Logger.Debug().Str("package", pkg.DisplayName()).Str("dependency", name).Msg("skipping dependency without build config")
			continue
		}
		target := dep.Location
		if b.LegacySelfPath {
			target = pkg.Location
		}
		refs.Add(RelPath(pkg.Location, target))
	}
	return refs.Values()
}

// ConfigPath returns the on-disk path of pkg's build configuration.
func (b *Builder) ConfigPath(pkg manifest.Package) string {
	return filepath.Join(b.RootDir, filepath.FromSlash(pkg.Location), b.ConfigName)
}

// HasConfig reports whether pkg has a build configuration file.
func (b *Builder) HasConfig(pkg manifest.Package) bool {
	info, err := os.Stat(b.ConfigPath(pkg))
	return err == nil && !info.IsDir()
}

// RelPath returns the slash-separated path from one repository-relative
// location to another, independent of the host separator.
func RelPath(from, to string) string {
	from = path.Clean(filepath.ToSlash(from))
	to = path.Clean(filepath.ToSlash(to))
	rel, err := filepath.Rel(filepath.FromSlash(from), filepath.FromSlash(to))
	if err != nil {
		return to
	}
	return path.Clean(filepath.ToSlash(rel))
}
