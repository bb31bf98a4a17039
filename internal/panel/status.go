// Package panel holds the chrome around pane content: the status bar and
// the overlays (picker, help, prompt).
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/theme"
)

// Status is the status bar at the bottom.
type Status struct {
	width   int
	content string // focused pane's content label
	paneNum int
	panes   int
	armed   bool
	pending string
	zoomed  bool
	errMsg  string
	theme   *theme.Theme
}

func NewStatus(th *theme.Theme) Status {
	return Status{theme: th}
}

func (s *Status) SetWidth(width int) { s.width = width }

// SetPane updates the focused pane section: its content label and its
// ordinal out of the total.
func (s *Status) SetPane(content string, num, total int) {
	s.content = content
	s.paneNum = num
	s.panes = total
}

// SetLeader updates the leader indicator. pending is the just-dispatched
// key shown during the settle window.
func (s *Status) SetLeader(armed bool, pending string) {
	s.armed = armed
	s.pending = pending
}

func (s *Status) SetZoomed(zoomed bool) { s.zoomed = zoomed }

func (s *Status) SetError(msg string) { s.errMsg = msg }

func (s *Status) ClearError() { s.errMsg = "" }

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}
	th := s.theme

	bgStyle := lipgloss.NewStyle().Background(th.StatusBg)

	var modeText string
	var modeColor lipgloss.Color
	switch {
	case s.armed:
		modeText, modeColor = "LEADER", th.Armed
	case s.pending != "":
		modeText, modeColor = "LEADER "+s.pending, th.Armed
	default:
		modeText, modeColor = "PANE", th.Focus
	}
	mode := lipgloss.NewStyle().
		Background(modeColor).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1).
		Render(modeText)

	var contentSection string
	if s.errMsg != "" {
		contentSection = lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.Error).
			Padding(0, 1).
			Render(s.errMsg)
	} else {
		label := s.content
		if label == "" {
			label = "empty"
		}
		contentSection = lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.StatusFg).
			Padding(0, 1).
			Render(label)
	}

	left := fmt.Sprintf("%s %s", mode, contentSection)

	var rightParts []string
	if s.zoomed {
		rightParts = append(rightParts, lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.Zoomed).
			Padding(0, 1).
			Render("ZOOM"))
	}
	if s.panes > 0 {
		rightParts = append(rightParts, lipgloss.NewStyle().
			Background(th.StatusBg).
			Foreground(th.StatusFg).
			Padding(0, 1).
			Render(fmt.Sprintf("%d/%d", s.paneNum, s.panes)))
	}
	right := strings.Join(rightParts, "")

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
