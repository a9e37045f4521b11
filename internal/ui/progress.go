package ui

import (
	"fmt"
	"io"
)

// Progress prints one numbered line per completed unit of work.
type Progress struct {
	out    io.Writer
	styles *Styles
	total  int
	done   int
}

// NewProgress creates a progress printer for total units.
func NewProgress(out io.Writer, styles *Styles, total int) *Progress {
	return &Progress{out: out, styles: styles, total: total}
}

// Step marks one unit as done and prints its label and status.
func (p *Progress) Step(label, status string) {
	p.done++
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s %s\n", p.done, p.total, label, p.styles.Status(status))
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
