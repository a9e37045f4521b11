package main

import (
	"bytes"
	"testing"

	"github.com/fbkclanna/tsrefs/internal/testutil"
)

// fixturePackages is a three-package monorepo: app depends on lib and an
// external package, lib depends on util, and util has no tsconfig.json.
func fixturePackages() []testutil.Pkg {
	return []testutil.Pkg{
		{Name: "app", Location: "packages/app", Deps: []string{"lib", "react"}, TSConfig: "{}\n"},
		{Name: "lib", Location: "packages/lib", Deps: []string{"util"}, TSConfig: "{}\n"},
		{Name: "util", Location: "packages/util"},
	}
}

func setupMonorepo(t *testing.T) string {
	t.Helper()
	return testutil.CreateMonorepo(t, "{}\n", fixturePackages()...)
}

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
