// Package config loads tsrefs settings from defaults, .tsrefs.yaml in the
// repository root, TSREFS_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/snapshot"
	"github.com/fbkclanna/tsrefs/internal/tsconfig"
)

// FileName is the config file looked up in the repository root.
const FileName = ".tsrefs.yaml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "TSREFS_"

// Config holds all settings.
type Config struct {
	ConfigName     string `koanf:"config_name" yaml:"config_name"`
	Resolver       string `koanf:"resolver" yaml:"resolver"`
	Snapshot       string `koanf:"snapshot" yaml:"snapshot,omitempty"`
	ForceRewrite   bool   `koanf:"force_rewrite" yaml:"force_rewrite,omitempty"`
	LegacySelfPath bool   `koanf:"legacy_self_path" yaml:"legacy_self_path,omitempty"`
	RootDir        string `koanf:"root_dir" yaml:"root_dir"`
	OutDir         string `koanf:"out_dir" yaml:"out_dir"`
	Verbose        bool   `koanf:"verbose" yaml:"verbose,omitempty"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ConfigName: tsconfig.FileName,
		Resolver:   manifest.KindYarn,
		Snapshot:   snapshot.FileName,
		RootDir:    "src",
		OutDir:     "lib",
	}
}

// Defaults returns the directory hints for synthesized compilerOptions.
func (c *Config) Defaults() tsconfig.Defaults {
	return tsconfig.Defaults{RootDir: c.RootDir, OutDir: c.OutDir}
}

// SnapshotPath resolves the snapshot path against the repository root.
func (c *Config) SnapshotPath(root string) string {
	if filepath.IsAbs(c.Snapshot) {
		return c.Snapshot
	}
	return filepath.Join(root, filepath.FromSlash(c.Snapshot))
}

// Validate checks settings that Load cannot coerce.
func (c *Config) Validate() error {
	if c.ConfigName == "" {
		return fmt.Errorf("config: config_name is required")
	}
	if strings.ContainsAny(c.ConfigName, `/\`) || c.ConfigName == "." || c.ConfigName == ".." {
		return fmt.Errorf("config: config_name must be a plain file name: %q", c.ConfigName)
	}
	switch c.Resolver {
	case manifest.KindYarn, manifest.KindSnapshot, manifest.KindScan:
	default:
		return fmt.Errorf("config: unknown resolver %q (must be yarn, snapshot, or scan)", c.Resolver)
	}
	if c.Resolver == manifest.KindSnapshot && c.Snapshot == "" {
		return fmt.Errorf("config: snapshot path is required for the snapshot resolver")
	}
	for label, dir := range map[string]string{"root_dir": c.RootDir, "out_dir": c.OutDir} {
		if path.IsAbs(filepath.ToSlash(dir)) {
			return fmt.Errorf("config: %s must be relative: %q", label, dir)
		}
	}
	return nil
}
