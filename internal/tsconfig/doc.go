// Package tsconfig reads and conditionally rewrites TypeScript build
// configuration files. Edits are applied to the raw JSON so every key the
// package does not touch keeps its position; a file is only rewritten when its
// content changes or a rewrite is forced.
package tsconfig
