package tsconfig

import (
	"fmt"
	"io/fs"
	"os"
)

// Outcome describes what happened, or would happen, to one configuration file.
type Outcome string

const (
	// OutcomeSkipped means the file does not exist; the package does not
	// take part in the reference graph.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeUnchanged means the file already holds everything required.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomePending means a rewrite is planned but was not applied.
	OutcomePending Outcome = "pending"
	// OutcomeWritten means the file was rewritten.
	OutcomeWritten Outcome = "written"
)

// Options controls Plan.
type Options struct {
	// Force rewrites every existing file, normalizing its formatting.
	Force    bool
	Defaults Defaults
}

// Change is the planned rewrite of one configuration file.
type Change struct {
	Path   string
	Exists bool
	// Write is set when Apply would overwrite the file.
	Write bool
	// Added lists references appended by this change.
	Added []string
	// References is the full reference list after the change.
	References []string
	Content    []byte

	perm fs.FileMode
}

// Plan reads the configuration at path and computes the rewrite that ensures
// composite builds and the given references. A missing file yields a change
// with Exists unset.
func Plan(path string, refs []string, opts Options) (*Change, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Change{Path: path}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return &Change{Path: path}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from workspace locations
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.EnsureComposite(opts.Defaults); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	added, err := doc.MergeReferences(refs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c := &Change{
		Path:       path,
		Exists:     true,
		Added:      added,
		References: doc.References(),
		perm:       info.Mode().Perm(),
	}
	if doc.Dirty() || opts.Force {
		c.Write = true
		c.Content = doc.Format()
	}
	return c, nil
}

// Outcome returns the outcome of the change without applying it.
func (c *Change) Outcome() Outcome {
	switch {
	case !c.Exists:
		return OutcomeSkipped
	case c.Write:
		return OutcomePending
	default:
		return OutcomeUnchanged
	}
}

// Apply writes the planned content, if any.
func (c *Change) Apply() (Outcome, error) {
	if !c.Write {
		return c.Outcome(), nil
	}
	if err := os.WriteFile(c.Path, c.Content, c.perm); err != nil {
		return "", &WriteError{Path: c.Path, Err: err}
	}
	return OutcomeWritten, nil
}

// Rewrite plans and applies the rewrite of the configuration at path.
func Rewrite(path string, refs []string, opts Options) (Outcome, error) {
	c, err := Plan(path, refs, opts)
	if err != nil {
		return "", err
	}
	return c.Apply()
}
