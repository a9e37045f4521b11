// Package snapshot handles parsing and writing of tsrefs.snapshot.yaml files.
// A snapshot records a resolved workspace manifest so later runs can compile
// references without invoking the package manager.
package snapshot
