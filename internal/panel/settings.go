package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/config"
	"github.com/pfassina/loom/internal/theme"
)

// Settings is a read-only pane showing the active configuration and where
// it came from.
type Settings struct {
	cfg    config.Config
	theme  *theme.Theme
	width  int
	height int
}

func NewSettings(cfg config.Config, th *theme.Theme) *Settings {
	return &Settings{cfg: cfg, theme: th}
}

func (s *Settings) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update ignores input; the pane is read-only.
func (s *Settings) Update(tea.Msg) tea.Cmd { return nil }

func (s *Settings) View() string {
	if s.width < 1 || s.height < 1 {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(s.theme.Accent)
	key := lipgloss.NewStyle().Foreground(s.theme.Subtle)
	val := lipgloss.NewStyle().Foreground(s.theme.Text)
	dim := lipgloss.NewStyle().Foreground(s.theme.Dim)

	rows := []struct{ k, v string }{
		{"library", s.cfg.LibraryPath},
		{"theme", s.cfg.Theme},
		{"shell", s.cfg.Shell},
		{"leader", s.cfg.LeaderKey},
		{"leader timeout", fmt.Sprintf("%dms", s.cfg.LeaderTimeout)},
		{"listen", s.cfg.Listen},
	}

	lines := []string{title.Render("settings"), ""}
	for _, r := range rows {
		lines = append(lines, key.Render(fmt.Sprintf("%-16s", r.k))+val.Render(r.v))
	}
	lines = append(lines, "")
	lines = append(lines, dim.Render("edit "+config.ConfigPath()+" and restart"))

	if len(lines) > s.height {
		lines = lines[:s.height]
	}
	return strings.Join(lines, "\n")
}
