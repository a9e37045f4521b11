// Package refgraph derives project references: for a workspace package, the
// relative paths to every workspace dependency that has its own build
// configuration.
package refgraph
