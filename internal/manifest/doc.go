// Package manifest resolves the set of workspace packages in a monorepo and
// their declared inter-package dependencies. The result is a read-only
// Registry that every later stage receives explicitly.
package manifest
