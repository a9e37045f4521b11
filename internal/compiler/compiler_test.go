package compiler

import (
	"path/filepath"
	"testing"

	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/testutil"
	"github.com/fbkclanna/tsrefs/internal/tsconfig"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const emptyConfig = "{}\n"

type fixture struct {
	dir string
	reg *manifest.Registry
}

func setup(t *testing.T, rootTSConfig string, pkgs ...testutil.Pkg) fixture {
	t.Helper()
	dir := testutil.CreateMonorepo(t, rootTSConfig, pkgs...)
	mp := make([]manifest.Package, 0, len(pkgs))
	for _, p := range pkgs {
		mp = append(mp, manifest.Package{Name: p.Name, Location: p.Location, Dependencies: p.Deps})
	}
	reg, err := manifest.NewRegistry(mp)
	require.NoError(t, err)
	return fixture{dir: dir, reg: reg}
}

func (f fixture) compiler(t *testing.T, mutate func(*Options)) *Compiler {
	t.Helper()
	opts := Options{
		RootDir:  f.dir,
		Defaults: tsconfig.DefaultDefaults(),
		Logger:   zerolog.New(zerolog.NewTestWriter(t)),
	}
	if mutate != nil {
		mutate(&opts)
	}
	return New(f.reg, opts)
}

func (f fixture) read(t *testing.T, location string) string {
	t.Helper()
	return testutil.ReadFile(t, filepath.Join(f.dir, filepath.FromSlash(location), tsconfig.FileName))
}

func referencePaths(json string) []string {
	var out []string
	for _, r := range gjson.Get(json, "references").Array() {
		out = append(out, r.Get("path").String())
	}
	return out
}

func endToEndFixture(t *testing.T) fixture {
	return setup(t, emptyConfig,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"pkg-b", "left-pad"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
	)
}

func TestRun_endToEnd(t *testing.T) {
	f := endToEndFixture(t)

	report, err := f.compiler(t, nil).Run()
	require.NoError(t, err)
	require.Len(t, report.Units, 3)
	assert.Equal(t, 3, report.Count(tsconfig.OutcomeWritten))

	a := f.read(t, "packages/a")
	assert.True(t, gjson.Get(a, "compilerOptions.composite").Bool())
	assert.Equal(t, []string{"../b"}, referencePaths(a))

	b := f.read(t, "packages/b")
	assert.True(t, gjson.Get(b, "compilerOptions.composite").Bool())
	assert.False(t, gjson.Get(b, "references").Exists())

	root := f.read(t, ".")
	assert.True(t, gjson.Get(root, "compilerOptions.composite").Bool())
	assert.Equal(t, []string{"packages/a", "packages/b"}, referencePaths(root))

	last := report.Units[2]
	assert.True(t, last.Root, "root aggregate is processed last")
	assert.Equal(t, manifest.RootName, last.Name)
	assert.Equal(t, "tsconfig.json", last.ConfigPath)
	assert.Equal(t, "packages/a/tsconfig.json", report.Units[0].ConfigPath)
}

func TestRun_idempotent(t *testing.T) {
	f := endToEndFixture(t)

	_, err := f.compiler(t, nil).Run()
	require.NoError(t, err)
	before := map[string]string{}
	for _, loc := range []string{".", "packages/a", "packages/b"} {
		before[loc] = f.read(t, loc)
	}

	report, err := f.compiler(t, nil).Run()
	require.NoError(t, err)
	assert.Empty(t, report.Changed(), "second run must not write")
	assert.Equal(t, 3, report.Count(tsconfig.OutcomeUnchanged))
	for loc, content := range before {
		assert.Equal(t, content, f.read(t, loc), loc)
	}
}

func TestRun_externalDependenciesExcluded(t *testing.T) {
	f := setup(t, "",
		testutil.Pkg{Name: "app", Location: "apps/web", Deps: []string{"react", "lib", "@types/node"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "lib", Location: "libs/core", TSConfig: emptyConfig},
	)

	report, err := f.compiler(t, nil).Run()
	require.NoError(t, err)

	app := report.Units[0]
	if diff := cmp.Diff([]string{"../../libs/core"}, app.References); diff != "" {
		t.Errorf("app references mismatch (-want +got):\n%s", diff)
	}
	for _, u := range report.Units {
		for _, r := range u.References {
			assert.NotContains(t, r, "react")
			assert.NotContains(t, r, "@types")
		}
	}
}

func TestRun_packageWithoutConfig(t *testing.T) {
	f := setup(t, emptyConfig,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"pkg-c"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-c", Location: "packages/c"},
	)

	report, err := f.compiler(t, nil).Run()
	require.NoError(t, err)

	c := report.Units[2]
	assert.Equal(t, "pkg-c", c.Name)
	assert.Equal(t, tsconfig.OutcomeSkipped, c.Outcome)
	assert.NoFileExists(t, filepath.Join(f.dir, "packages", "c", tsconfig.FileName))

	assert.False(t, gjson.Get(f.read(t, "packages/a"), "references").Exists(), "pkg-c has no config, so it is not a reference target")
	assert.Equal(t, []string{"packages/a", "packages/b"}, referencePaths(f.read(t, ".")))
}

func TestRun_rootWithoutConfig(t *testing.T) {
	f := setup(t, "",
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", TSConfig: emptyConfig},
	)

	report, err := f.compiler(t, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, tsconfig.OutcomeSkipped, report.Units[1].Outcome)
	assert.NoFileExists(t, filepath.Join(f.dir, tsconfig.FileName))
}

func TestRun_preservesExistingReferences(t *testing.T) {
	f := setup(t, `{"compilerOptions": {"composite": true}, "references": [{"path": "configs/build"}]}`,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", TSConfig: emptyConfig},
	)

	_, err := f.compiler(t, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"configs/build", "packages/a"}, referencePaths(f.read(t, ".")))
}

func TestRun_dryRun(t *testing.T) {
	f := endToEndFixture(t)

	report, err := f.compiler(t, func(o *Options) { o.DryRun = true }).Run()
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.Count(tsconfig.OutcomePending))
	assert.Len(t, report.Changed(), 3)
	assert.Equal(t, []string{"../b"}, report.Units[0].Added)
	assert.Equal(t, emptyConfig, f.read(t, "packages/a"), "dry run leaves files untouched")
}

func TestRun_force(t *testing.T) {
	f := endToEndFixture(t)
	_, err := f.compiler(t, nil).Run()
	require.NoError(t, err)

	report, err := f.compiler(t, func(o *Options) { o.Force = true }).Run()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(tsconfig.OutcomeWritten))
}

func TestRun_malformedAborts(t *testing.T) {
	f := setup(t, emptyConfig,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", TSConfig: `{"compilerOptions": `},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
	)

	report, err := f.compiler(t, nil).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, tsconfig.ErrMalformed)
	assert.Contains(t, err.Error(), "pkg-a")
	assert.Empty(t, report.Units)
	assert.Equal(t, emptyConfig, f.read(t, "packages/b"), "run stops at the first fatal error")
	assert.Equal(t, emptyConfig, f.read(t, "."))
}

func TestRun_onUnit(t *testing.T) {
	f := endToEndFixture(t)

	var seen []string
	_, err := f.compiler(t, func(o *Options) {
		o.OnUnit = func(r UnitResult) { seen = append(seen, r.Name) }
	}).Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg-a", "pkg-b", manifest.RootName}, seen)
}

func TestRun_legacySelfPath(t *testing.T) {
	f := endToEndFixture(t)

	_, err := f.compiler(t, func(o *Options) { o.LegacySelfPath = true }).Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, referencePaths(f.read(t, "packages/a")))
	assert.Equal(t, []string{"."}, referencePaths(f.read(t, ".")))
}

func TestGraph(t *testing.T) {
	f := setup(t, emptyConfig,
		testutil.Pkg{Name: "pkg-a", Location: "packages/a", Deps: []string{"pkg-b"}, TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-b", Location: "packages/b", TSConfig: emptyConfig},
		testutil.Pkg{Name: "pkg-c", Location: "packages/c"},
	)

	units := f.compiler(t, nil).Graph()
	require.Len(t, units, 4)
	assert.Equal(t, []string{"../b"}, units[0].References)
	assert.Equal(t, tsconfig.OutcomeSkipped, units[2].Outcome)
	assert.Equal(t, []string{"packages/a", "packages/b"}, units[3].References)
	assert.Equal(t, emptyConfig, f.read(t, "packages/a"), "graph never writes")
}
