package snapshot

// FileName is the default snapshot file name, relative to the repository root.
const FileName = "tsrefs.snapshot.yaml"

// Version is the only snapshot format version understood by Parse.
const Version = 1

// File represents tsrefs.snapshot.yaml.
type File struct {
	Version     int                 `yaml:"version"`
	GeneratedAt string              `yaml:"generated_at"`
	ToolVersion string              `yaml:"tool_version"`
	Packages    map[string]*Package `yaml:"packages"`
}

// Package records the resolved state of a single workspace package.
type Package struct {
	Location              string   `yaml:"location"`
	WorkspaceDependencies []string `yaml:"workspace_dependencies,omitempty"`
}
