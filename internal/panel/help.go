package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/theme"
)

// HelpEntry is one key binding for display.
type HelpEntry struct {
	Key   string
	Label string
}

// Help renders the leader key reference overlay.
type Help struct {
	entries []HelpEntry
	leader  string
	width   int
	visible bool
	theme   *theme.Theme
}

func NewHelp(leader string, th *theme.Theme) Help {
	return Help{leader: leader, theme: th}
}

// SetEntries replaces the listed bindings, preserving the given order.
func (h *Help) SetEntries(entries []HelpEntry) {
	h.entries = entries
}

func (h *Help) SetWidth(width int) { h.width = width }

func (h *Help) Show() { h.visible = true }

func (h *Help) Hide() { h.visible = false }

func (h Help) Visible() bool { return h.visible }

func (h Help) View() string {
	if !h.visible || len(h.entries) == 0 {
		return ""
	}
	th := h.theme

	width := h.width
	if width == 0 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(width - 4)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Accent)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(th.Zoomed)
	labelStyle := lipgloss.NewStyle().Foreground(th.Text)

	lines := []string{titleStyle.Render(fmt.Sprintf("%s then...", h.leader))}

	// Two columns when the overlay is wide enough.
	colWidth := (width - 4) / 2
	twoCol := colWidth >= 20

	for i := 0; i < len(h.entries); i += 2 {
		left := fmt.Sprintf("%s %s",
			keyStyle.Render(h.entries[i].Key),
			labelStyle.Render(h.entries[i].Label),
		)

		if twoCol && i+1 < len(h.entries) {
			right := fmt.Sprintf("%s %s",
				keyStyle.Render(h.entries[i+1].Key),
				labelStyle.Render(h.entries[i+1].Label),
			)
			leftPad := colWidth - lipgloss.Width(left)
			if leftPad < 1 {
				leftPad = 1
			}
			lines = append(lines, left+strings.Repeat(" ", leftPad)+right)
		} else {
			lines = append(lines, left)
			if !twoCol && i+1 < len(h.entries) {
				lines = append(lines, fmt.Sprintf("%s %s",
					keyStyle.Render(h.entries[i+1].Key),
					labelStyle.Render(h.entries[i+1].Label),
				))
			}
		}
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
