package main

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fbkclanna/tsrefs/internal/config"
	"github.com/fbkclanna/tsrefs/internal/manifest"
	"github.com/fbkclanna/tsrefs/internal/yarn"
)

var errAborted = errors.New("user aborted")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// --- inputModel: text input with a default and validation ---

type inputModel struct {
	textInput textinput.Model
	title     string
	// fallback is used when the input is left empty.
	fallback string
	validate func(string) error
	errMsg   string
	done     bool
	aborted  bool
}

func newInputModel(title, fallback string, validate func(string) error) inputModel {
	ti := textinput.New()
	ti.Placeholder = fallback
	ti.Focus()
	return inputModel{textInput: ti, title: title, fallback: fallback, validate: validate}
}

// value returns the trimmed input, or the fallback when empty.
func (m inputModel) value() string {
	v := strings.TrimSpace(m.textInput.Value())
	if v == "" {
		return m.fallback
	}
	return v
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.value()); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	if m.fallback != "" {
		b.WriteString(" " + hintStyle.Render("(default "+m.fallback+")"))
	}
	b.WriteString("\n" + m.textInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// --- confirmModel: yes/no confirmation ---

type confirmModel struct {
	title   string
	value   bool
	done    bool
	aborted bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		case "left", "right", "tab", "h", "l":
			m.value = !m.value
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	yes := " Yes "
	no := " No "
	if m.value {
		yes = selectedStyle.Render(" Yes ")
	} else {
		no = selectedStyle.Render(" No ")
	}
	return fmt.Sprintf("%s %s / %s\n", titleStyle.Render(m.title), yes, no)
}

// --- prompt helpers ---

func promptInput(title, fallback string, validate func(string) error) (string, error) {
	result, err := tea.NewProgram(newInputModel(title, fallback, validate)).Run()
	if err != nil {
		return "", err
	}
	rm := result.(inputModel)
	if rm.aborted {
		return "", errAborted
	}
	return rm.value(), nil
}

func promptConfirm(title string, initial bool) (bool, error) {
	result, err := tea.NewProgram(confirmModel{title: title, value: initial}).Run()
	if err != nil {
		return false, err
	}
	rm := result.(confirmModel)
	if rm.aborted {
		return false, errAborted
	}
	return rm.value, nil
}

// --- validators ---

func validateResolver(s string) error {
	switch s {
	case manifest.KindYarn, manifest.KindSnapshot, manifest.KindScan:
		return nil
	default:
		return fmt.Errorf("resolver must be yarn, snapshot, or scan")
	}
}

func validateConfigName(s string) error {
	if s == "" {
		return fmt.Errorf("file name is required")
	}
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("must be a plain file name")
	}
	if filepath.Ext(s) != ".json" {
		return fmt.Errorf("build configuration must be a .json file")
	}
	return nil
}

func validateRelDir(s string) error {
	if s == "" {
		return fmt.Errorf("directory is required")
	}
	if path.IsAbs(filepath.ToSlash(s)) || filepath.IsAbs(s) {
		return fmt.Errorf("directory must be relative to the package")
	}
	return nil
}

// warnMissingYarn tells the user that the chosen resolver cannot run yet.
func warnMissingYarn(out io.Writer, resolver string) {
	if resolver == manifest.KindYarn && !yarn.IsInstalled() {
		_, _ = fmt.Fprintln(out, errStyle.Render("  warning: yarn is not on PATH; compile will fail until it is installed"))
	}
}

// interactiveConfig walks the user through every setting, starting from cfg.
func interactiveConfig(out io.Writer, cfg *config.Config) (*config.Config, error) {
	next := *cfg

	resolver, err := promptInput("Workspace resolver (yarn, snapshot, scan)", cfg.Resolver, validateResolver)
	if err != nil {
		return nil, err
	}
	next.Resolver = resolver
	warnMissingYarn(out, resolver)

	if next.ConfigName, err = promptInput("Build configuration file name", cfg.ConfigName, validateConfigName); err != nil {
		return nil, err
	}
	if next.RootDir, err = promptInput("Source directory for new compilerOptions", cfg.RootDir, validateRelDir); err != nil {
		return nil, err
	}
	if next.OutDir, err = promptInput("Output directory for new compilerOptions", cfg.OutDir, validateRelDir); err != nil {
		return nil, err
	}
	if next.ForceRewrite, err = promptConfirm("Always rewrite every configuration?", cfg.ForceRewrite); err != nil {
		return nil, err
	}

	write, err := promptConfirm("Write "+config.FileName+"?", true)
	if err != nil {
		return nil, err
	}
	if !write {
		return nil, errAborted
	}
	return &next, nil
}
