package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns.
type Table struct {
	w       *tabwriter.Writer
	columns int
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw, columns: len(headers)}
}

// Row appends a row of values. Missing trailing values render as empty cells.
func (t *Table) Row(values ...any) {
	parts := make([]string, max(len(values), t.columns))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// ListRow appends a row whose last column holds a list, one item per line.
// Continuation lines leave the leading columns blank. An empty list renders
// as "-".
func (t *Table) ListRow(list []string, values ...any) {
	if len(list) == 0 {
		t.Row(append(values, "-")...)
		return
	}
	t.Row(append(values, list[0])...)
	blank := make([]any, len(values))
	for i := range blank {
		blank[i] = ""
	}
	for _, item := range list[1:] {
		t.Row(append(blank, item)...)
	}
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
