package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/content"
)

// SetupResult is returned by RunSetup.
type SetupResult struct {
	LibraryPath string
	Cancelled   bool
}

type setupModel struct {
	input textinput.Model
	err   string
	done  bool
	quit  bool
}

func newSetupModel() setupModel {
	ti := textinput.New()
	ti.Placeholder = "~/library"
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return setupModel{input: ti}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			path := m.input.Value()
			if path == "" {
				path = "~/library"
			}
			expanded := ExpandHome(path)

			if err := inspectLibrary(expanded); err != nil {
				m.err = err.Error()
				return m, nil
			}

			m.input.SetValue(path)
			m.done = true
			return m, tea.Quit

		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("Welcome to Loom")

	var s string
	s += "\n " + title + "\n\n"
	s += " Enter your library path:\n\n"
	s += "   " + m.input.View() + "\n\n"
	s += " An existing library is reused; a new one gets the\n"
	s += " threads/ and notes/ layout created for it.\n\n"

	if m.err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s += " " + errStyle.Render(m.err) + "\n\n"
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	s += " " + dim.Render("Press Enter to confirm, Esc to cancel") + "\n"

	return s
}

// inspectLibrary checks that a path can hold a library: either a
// directory whose threads/notes entries (if present) are directories, or
// a missing path under an existing parent.
func inspectLibrary(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", path)
		}
		for _, sub := range []string{content.ThreadsDir, content.NotesDir} {
			fi, err := os.Stat(filepath.Join(path, sub))
			if err == nil && !fi.IsDir() {
				return fmt.Errorf("%s has a file named %s where a directory is needed", path, sub)
			}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	parent := filepath.Dir(path)
	pinfo, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("parent directory %s does not exist", parent)
	}
	if !pinfo.IsDir() {
		return fmt.Errorf("%s is not a directory", parent)
	}
	return nil
}

// ScaffoldLibrary creates the directory layout a library needs: the root
// itself, the .loom dot-dir, and the threads/notes document dirs.
func ScaffoldLibrary(path string) error {
	for _, dir := range []string{
		path,
		filepath.Join(path, ".loom"),
		filepath.Join(path, content.ThreadsDir),
		filepath.Join(path, content.NotesDir),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// RunSetup runs the first-run TUI prompt and returns the chosen library path.
func RunSetup() (SetupResult, error) {
	m := newSetupModel()
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return SetupResult{}, err
	}

	fm, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("unexpected model type from setup wizard")
	}
	if fm.quit {
		return SetupResult{Cancelled: true}, nil
	}

	path := fm.input.Value()
	if path == "" {
		path = "~/library"
	}
	expanded := ExpandHome(path)

	if err := ScaffoldLibrary(expanded); err != nil {
		return SetupResult{}, fmt.Errorf("scaffolding library: %w", err)
	}
	if err := SaveFile(expanded); err != nil {
		return SetupResult{}, fmt.Errorf("saving config: %w", err)
	}

	return SetupResult{LibraryPath: expanded}, nil
}
