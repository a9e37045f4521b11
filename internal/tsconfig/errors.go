package tsconfig

import (
	"errors"
	"fmt"
)

// ErrMalformed reports a configuration that is not a JSON object of the
// expected shape. It is fatal: a partially updated reference graph is worse
// than a failed run.
var ErrMalformed = errors.New("malformed build configuration")

// WriteError is returned when a rewritten configuration cannot be saved.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
