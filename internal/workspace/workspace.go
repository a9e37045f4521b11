package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/tsrefs/internal/compiler"
	"github.com/fbkclanna/tsrefs/internal/config"
	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Context holds the resolved root, settings and registry for a repository.
type Context struct {
	Root     string
	Config   *config.Config
	Registry *manifest.Registry
}

// LoadConfig resolves root to an absolute directory and loads its settings.
func LoadConfig(root string, flags *pflag.FlagSet) (string, *config.Config, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolving repository root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", nil, fmt.Errorf("repository root: %w", err)
	}
	if !info.IsDir() {
		return "", nil, fmt.Errorf("repository root %s is not a directory", root)
	}
	cfg, err := config.Load(root, flags)
	if err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// Load loads settings and resolves the workspace manifest with the configured
// resolver.
func Load(ctx context.Context, root string, flags *pflag.FlagSet) (*Context, error) {
	root, cfg, err := LoadConfig(root, flags)
	if err != nil {
		return nil, err
	}
	res, err := manifest.NewResolver(cfg.Resolver, root, cfg.SnapshotPath(root))
	if err != nil {
		return nil, err
	}
	reg, err := res.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return &Context{Root: root, Config: cfg, Registry: reg}, nil
}

// CompilerOptions maps the settings onto compiler options.
func (c *Context) CompilerOptions(logger zerolog.Logger) compiler.Options {
	return compiler.Options{
		RootDir:        c.Root,
		ConfigName:     c.Config.ConfigName,
		Force:          c.Config.ForceRewrite,
		LegacySelfPath: c.Config.LegacySelfPath,
		Defaults:       c.Config.Defaults(),
		Logger:         logger,
	}
}

// Compiler returns a compiler over the resolved registry.
func (c *Context) Compiler(logger zerolog.Logger) *compiler.Compiler {
	return compiler.New(c.Registry, c.CompilerOptions(logger))
}

// ConfigPath returns the absolute path of pkg's build configuration.
func (c *Context) ConfigPath(pkg manifest.Package) string {
	return filepath.Join(c.Root, filepath.FromSlash(pkg.Location), c.Config.ConfigName)
}
