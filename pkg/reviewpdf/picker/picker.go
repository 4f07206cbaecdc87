// Package picker resolves the input spreadsheet path, either from an explicit
// flag or by letting the user browse for it in the terminal.
package picker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when no terminal is attached for the picker.
var ErrNotInteractive = errors.New("not an interactive terminal")

// ErrCancelled is returned when the user leaves the picker without choosing a file.
var ErrCancelled = errors.New("file selection cancelled")

// Resolver supplies the input path.
type Resolver interface {
	Resolve() (string, error)
}

// ExplicitPath is a path given on the command line.
type ExplicitPath string

// Resolve returns the path unchanged.
func (p ExplicitPath) Resolve() (string, error) {
	return string(p), nil
}

// InteractivePrompt lets the user browse for a file in the terminal.
type InteractivePrompt struct {
	// StartDir is the directory shown first; empty means the working directory.
	StartDir string
	// Extensions restricts selectable files, e.g. ".xlsx".
	Extensions []string
	// In and Out default to os.Stdin and os.Stdout.
	In  *os.File
	Out *os.File
}

// Resolve runs the picker. It fails with ErrNotInteractive when either
// stream is not a terminal.
func (p InteractivePrompt) Resolve() (string, error) {
	in, out := p.In, p.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if !IsTerminal(in) || !IsTerminal(out) {
		return "", ErrNotInteractive
	}

	dir := p.StartDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("file picker: %w", err)
		}
		dir = wd
	}

	final, err := tea.NewProgram(newModel(dir, p.Extensions), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", fmt.Errorf("file picker: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.selected == "" {
		return "", ErrCancelled
	}
	return m.selected, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

type model struct {
	fp       filepicker.Model
	selected string
	notice   string
	quitting bool
}

func newModel(dir string, extensions []string) model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = extensions
	return model{fp: fp}
}

func (m model) Init() tea.Cmd {
	return m.fp.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.selected = path
		m.quitting = true
		return m, tea.Quit
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.notice = fmt.Sprintf("%s is not a supported spreadsheet", filepath.Base(path))
		return m, cmd
	}
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select the review export"))
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.fp.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: select · q: cancel"))
	return b.String()
}
