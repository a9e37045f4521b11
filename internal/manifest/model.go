package manifest

// RootLocation is the location of the synthetic root aggregate.
const RootLocation = "."

// RootName identifies the root aggregate in reports and log output.
const RootName = "(root)"

// Package is a single workspace package as reported by the package manager.
type Package struct {
	Name string
	// Location is slash-separated and relative to the repository root.
	Location string
	// Dependencies may name packages outside the workspace.
	Dependencies []string
	// Root is set only on the synthetic aggregate returned by Registry.Root.
	Root bool
}

// DisplayName returns the package name, or RootName for the aggregate.
func (p Package) DisplayName() string {
	if p.Root {
		return RootName
	}
	return p.Name
}
