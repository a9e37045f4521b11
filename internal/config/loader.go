package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	goyaml "gopkg.in/yaml.v3"
)

// flagKeys maps command-line flags to config keys. Flags not listed here are
// command options, not settings.
var flagKeys = map[string]string{
	"config-name":      "config_name",
	"resolver":         "resolver",
	"snapshot":         "snapshot",
	"force":            "force_rewrite",
	"legacy-self-path": "legacy_self_path",
	"root-dir":         "root_dir",
	"out-dir":          "out_dir",
	"verbose":          "verbose",
}

// boolKeys are settings that behave as switches when set from the environment.
var boolKeys = map[string]bool{
	"force_rewrite":    true,
	"legacy_self_path": true,
	"verbose":          true,
}

// envValue maps TSREFS_* variables to config keys. A switch that is set to a
// value strconv.ParseBool does not recognize, such as "yes", is on.
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if !boolKeys[key] {
		return key, value
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return key, b
	}
	return key, value != ""
}

// Load reads settings for the repository rooted at root. flags may be nil;
// only flags that were explicitly set override lower layers.
func Load(root string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"config_name":      def.ConfigName,
		"resolver":         def.Resolver,
		"snapshot":         def.Snapshot,
		"force_rewrite":    def.ForceRewrite,
		"legacy_self_path": def.LegacySelfPath,
		"root_dir":         def.RootDir,
		"out_dir":          def.OutDir,
		"verbose":          def.Verbose,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	cfgPath := filepath.Join(root, FileName)
	fileUsed := ""
	if _, err := os.Stat(cfgPath); err == nil {
		if err := k.Load(file.Provider(cfgPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgPath, err)
		}
		fileUsed = cfgPath
	}

	// TSREFS_FORCE_REWRITE -> force_rewrite
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.FileUsed = fileUsed
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save validates cfg and writes it as YAML.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := goyaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // config is committed with the repository
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
