package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/fbkclanna/tsrefs/internal/snapshot"
	"github.com/fbkclanna/tsrefs/internal/yarn"
	"github.com/tidwall/gjson"
)

// ErrResolve wraps every failure to obtain the workspace manifest.
var ErrResolve = errors.New("resolving workspace manifest")

// Resolver produces the workspace registry for a repository. It is the only
// place where tsrefs talks to the package manager.
type Resolver interface {
	Resolve(ctx context.Context) (*Registry, error)
}

// Resolver kinds accepted by NewResolver.
const (
	KindYarn     = "yarn"
	KindSnapshot = "snapshot"
	KindScan     = "scan"
)

// NewResolver returns the resolver of the given kind rooted at dir.
// snapshotPath is only used by the snapshot resolver.
func NewResolver(kind, dir, snapshotPath string) (Resolver, error) {
	switch kind {
	case KindYarn, "":
		return &YarnResolver{Dir: dir}, nil
	case KindSnapshot:
		return &SnapshotResolver{Path: snapshotPath}, nil
	case KindScan:
		return &ScanResolver{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown resolver: %q (must be yarn, snapshot, or scan)", kind)
	}
}

// YarnResolver asks yarn for its resolved workspace layout.
type YarnResolver struct {
	Dir string
	// Exec runs the workspaces query; nil means yarn.WorkspacesInfo.
	Exec func(ctx context.Context, dir string) ([]byte, error)
}

// Resolve runs the workspaces query and parses its output.
func (y *YarnResolver) Resolve(ctx context.Context) (*Registry, error) {
	run := y.Exec
	if run == nil {
		run = yarn.WorkspacesInfo
	}
	out, err := run(ctx, y.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	pkgs, err := ParseWorkspacesInfo(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	return NewRegistry(pkgs)
}

// ParseWorkspacesInfo parses the JSON object printed by `yarn workspaces info`.
// Banner lines printed around the object by non-silent yarn are ignored.
func ParseWorkspacesInfo(data []byte) ([]Package, error) {
	start := bytes.IndexByte(data, '{')
	end := bytes.LastIndexByte(data, '}')
	if start < 0 || end < start {
		return nil, fmt.Errorf("parsing workspaces info: no JSON object in output")
	}
	data = data[start : end+1]
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing workspaces info: invalid JSON")
	}

	var (
		pkgs    []Package
		itemErr error
	)
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			itemErr = fmt.Errorf("parsing workspaces info: entry %q is not an object", key.String())
			return false
		}
		p := Package{
			Name:     key.String(),
			Location: value.Get("location").String(),
		}
		// mismatchedWorkspaceDependencies are installed from the registry,
		// so they are not edges of the build graph.
		for _, dep := range value.Get("workspaceDependencies").Array() {
			p.Dependencies = append(p.Dependencies, dep.String())
		}
		pkgs = append(pkgs, p)
		return true
	})
	if itemErr != nil {
		return nil, itemErr
	}
	return pkgs, nil
}

// SnapshotResolver reads a manifest recorded earlier by `tsrefs snapshot`.
type SnapshotResolver struct {
	Path string
}

// Resolve loads the snapshot file.
func (s *SnapshotResolver) Resolve(_ context.Context) (*Registry, error) {
	f, err := snapshot.Load(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolve, err)
	}
	return NewRegistry(FromSnapshot(f))
}
