// Package ui renders command output: aligned tables, progress lines and
// status labels coloured when the output is a terminal.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles bound to one output stream.
type Styles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	changed lipgloss.Style
	muted   lipgloss.Style
	failed  lipgloss.Style
}

// NewStyles detects the colour profile of out. Non-terminal writers get plain
// text.
func NewStyles(out io.Writer) *Styles {
	r := lipgloss.NewRenderer(out)
	return &Styles{
		title:   r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		changed: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		muted:   r.NewStyle().Faint(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Title renders a heading.
func (s *Styles) Title(text string) string { return s.title.Render(text) }

// Failed renders an error label.
func (s *Styles) Failed(text string) string { return s.failed.Render(text) }

// Status renders a unit status. Unknown statuses are returned unstyled.
func (s *Styles) Status(status string) string {
	switch status {
	case "unchanged", "ok":
		return s.ok.Render(status)
	case "written", "pending":
		return s.changed.Render(status)
	case "skipped":
		return s.muted.Render(status)
	case "failed":
		return s.failed.Render(status)
	default:
		return status
	}
}
