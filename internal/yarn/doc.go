// Package yarn wraps the yarn CLI commands tsrefs needs to discover the
// workspace layout. It does not depend on other internal packages.
package yarn
