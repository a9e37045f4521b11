package refgraph

import (
	"testing"

	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

const emptyConfig = "{}\n"

func newBuilder(t *testing.T, rootTSConfig string, pkgs ...testutil.Pkg) *Builder {
	t.Helper()
	dir := testutil.CreateMonorepo(t, rootTSConfig, pkgs...)
	mp := make([]manifest.Package, 0, len(pkgs))
	for _, p := range pkgs {
		mp = append(mp, manifest.Package{Name: p.Name, Location: p.Location, Dependencies: p.Deps})
	}
	reg, err := manifest.NewRegistry(mp)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	return &Builder{
		Registry:   reg,
		RootDir:    dir,
		ConfigName: "tsconfig.json",
		Logger:     zerolog.New(zerolog.NewTestWriter(t)),
	}
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"packages/a", "packages/b", "../b"},
		{".", "packages/a", "packages/a"},
		{"packages/a", "packages/a", "."},
		{"packages/nested/a", "tools/b", "../../../tools/b"},
		{"packages/a/", "./packages/b", "../b"},
		{"dev-packages/cli", ".", "../.."},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			if got := RelPath(tt.from, tt.to); got != tt.want {
				t.Errorf("RelPath(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestReferences(t *testing.T) {
	b := newBuilder(t, emptyConfig,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"pkg-b", "left-pad", "pkg-c", "pkg-b"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-c", Location: "packages/c"},
	)

	a, _ := b.Registry.Lookup("pkg-a")
	got := b.References(a)
	want := []string{"../b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("References(pkg-a) mismatch (-want +got):\n%s", diff)
	}
}

func TestReferences_root(t *testing.T) {
	b := newBuilder(t, emptyConfig,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-c", Location: "packages/c", TSConfig: emptyConfig},
		testutil.Pkg{Name: "no-config", Location: "packages/d"},
	)

	got := b.References(b.Registry.Root())
	want := []string{"packages/a", "packages/b", "packages/c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("References(root) mismatch (-want +got):\n%s", diff)
	}
}

func TestReferences_noWorkspaceDeps(t *testing.T) {
	b := newBuilder(t, "",
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"react", "lodash"}, TSConfig: emptyConfig},
	)
	a, _ := b.Registry.Lookup("pkg-a")
	if got := b.References(a); len(got) != 0 {
		t.Errorf("References() = %v, want none", got)
	}
}

func TestReferences_legacySelfPath(t *testing.T) {
	b := newBuilder(t, "",
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"pkg-b", "pkg-c"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-c", Location: "packages/c", TSConfig: emptyConfig},
	)
	b.LegacySelfPath = true

	a, _ := b.Registry.Lookup("pkg-a")
	got := b.References(a)
	if diff := cmp.Diff([]string{"."}, got); diff != "" {
		t.Errorf("legacy References() mismatch (-want +got):\n%s", diff)
	}
}

func TestReferences_workspaceAtRoot(t *testing.T) {
	b := newBuilder(t, "",
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"tools", "pkg-b"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", Deps: []string{"tools"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "tools", Location: ".", TSConfig: emptyConfig},
	)

	a, _ := b.Registry.Lookup("pkg-a")
	if diff := cmp.Diff([]string{"../..", "../b"}, b.References(a)); diff != "" {
		t.Errorf("References() mismatch (-want +got):\n%s", diff)
	}
}

func TestHasConfig_directoryIsNotConfig(t *testing.T) {
	b := newBuilder(t, "",
		testutil.Pkg{Name: "pkg-a", Location: "packages/a"},
	)
	testutil.WriteFile(t, b.ConfigPath(manifest.Package{Location: "packages/a"})+"/x", "")
	a, _ := b.Registry.Lookup("pkg-a")
	if b.HasConfig(a) {
		t.Error("a directory named tsconfig.json is not a build configuration")
	}
}

func TestPathSet(t *testing.T) {
	s := NewPathSet()
	if !s.Add("../b") || !s.Add("../a") {
		t.Fatal("first insertions should succeed")
	}
	if s.Add("../b") {
		t.Error("duplicate insertion should be rejected")
	}
	if !s.Has("../a") || s.Has("../c") {
		t.Error("Has() mismatch")
	}
	if diff := cmp.Diff([]string{"../b", "../a"}, s.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
