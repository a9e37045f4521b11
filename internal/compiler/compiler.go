// Package compiler drives a full reference-graph refresh: every workspace
// package, then the root aggregate, is resolved to its references and its
// build configuration is rewritten when needed.
package compiler

import (
	"fmt"
	"path/filepath"

	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/refgraph"
	"github.com/fbkclanna/tsrefs/internal/tsconfig"
	"github.com/rs/zerolog"
)

// Options configures a Compiler.
type Options struct {
	// RootDir is the repository root on disk.
	RootDir string
	// ConfigName defaults to tsconfig.FileName.
	ConfigName     string
	Force          bool
	DryRun         bool
	LegacySelfPath bool
	Defaults       tsconfig.Defaults
	Logger         zerolog.Logger
	// OnUnit, if set, is called after each unit has been processed.
	OnUnit func(UnitResult)
}

// Compiler processes one registry. It holds no state between runs.
type Compiler struct {
	registry *manifest.Registry
	opts     Options
	builder  *refgraph.Builder
}

// New returns a compiler over reg.
func New(reg *manifest.Registry, opts Options) *Compiler {
	if opts.ConfigName == "" {
		opts.ConfigName = tsconfig.FileName
	}
	return &Compiler{
		registry: reg,
		opts:     opts,
		builder: &refgraph.Builder{
			Registry:       reg,
			RootDir:        opts.RootDir,
			ConfigName:     opts.ConfigName,
			LegacySelfPath: opts.LegacySelfPath,
			Logger:         opts.Logger,
		},
	}
}

// Units returns the units of work in processing order: registry packages
// followed by the root aggregate.
func (c *Compiler) Units() []manifest.Package {
	return append(c.registry.Packages(), c.registry.Root())
}

// Graph returns each unit's references without reading or writing any build
// configuration beyond existence checks.
func (c *Compiler) Graph() []UnitResult {
	units := c.Units()
	out := make([]UnitResult, 0, len(units))
	for _, u := range units {
		res := c.newResult(u)
		res.References = c.builder.References(u)
		if !c.builder.HasConfig(u) {
			res.Outcome = tsconfig.OutcomeSkipped
		}
		out = append(out, res)
	}
	return out
}

// Run processes every unit. The first fatal error aborts the run.
func (c *Compiler) Run() (*Report, error) {
	if c.opts.LegacySelfPath {
		c.opts.Logger.Warn().Msg("legacy self-path references enabled; every reference will point at the package itself")
	}
	report := &Report{DryRun: c.opts.DryRun}
	for _, u := range c.Units() {
		res, err := c.process(u)
		if err != nil {
			return report, fmt.Errorf("compiling references for %s: %w", u.DisplayName(), err)
		}
		report.Units = append(report.Units, res)
		if c.opts.OnUnit != nil {
			c.opts.OnUnit(res)
		}
	}
	return report, nil
}

func (c *Compiler) process(u manifest.Package) (UnitResult, error) {
	res := c.newResult(u)
	refs := c.builder.References(u)

	change, err := tsconfig.Plan(c.builder.ConfigPath(u), refs, tsconfig.Options{
		Force:    c.opts.Force,
		Defaults: c.opts.Defaults,
	})
	if err != nil {
		return res, err
	}
	res.Added = change.Added
	res.References = change.References

	if c.opts.DryRun {
		res.Outcome = change.Outcome()
	} else if res.Outcome, err = change.Apply(); err != nil {
		return res, err
	}

	c.opts.Logger.Debug().
		Str("package", res.Name).
		Str("config", res.ConfigPath).
		Str("outcome", string(res.Outcome)).
		Strs("added", res.Added).
		Msg("processed")
	return res, nil
}

func (c *Compiler) newResult(u manifest.Package) UnitResult {
	return UnitResult{
		Name:       u.DisplayName(),
		Location:   u.Location,
		ConfigPath: filepath.ToSlash(filepath.Join(filepath.FromSlash(u.Location), c.opts.ConfigName)),
		Root:       u.Root,
	}
}
