// Package workspace ties configuration loading to manifest resolution. Its
// Context holds the repository root, the effective settings and the resolved
// package registry that every command operates on.
package workspace
