package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/theme"
)

// PickerItem is one selectable entry: a library document or a builtin
// content kind.
type PickerItem struct {
	Title  string
	Handle content.Handle
	Extra  string // e.g. kind or path hint
}

// PickedMsg is sent when an item is selected.
type PickedMsg struct {
	Handle content.Handle
}

// PickerCreateMsg is sent when the user asks to create a thread from the
// current query (no matching results). The app confirms before creating.
type PickerCreateMsg struct {
	Title string
}

// PickerClosedMsg is sent when the picker is dismissed.
type PickerClosedMsg struct{}

// SearchFunc returns items for a query.
type SearchFunc func(query string) []PickerItem

// Picker is the content selection overlay.
type Picker struct {
	input    textinput.Model
	items    []PickerItem
	cursor   int
	width    int
	height   int
	visible  bool
	searchFn SearchFunc
	theme    *theme.Theme
}

func NewPicker(th *theme.Theme) Picker {
	ti := textinput.New()
	ti.Placeholder = "Open content..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return Picker{input: ti, theme: th}
}

func (p *Picker) SetSearchFunc(fn SearchFunc) {
	p.searchFn = fn
}

func (p *Picker) Show() {
	p.visible = true
	p.input.SetValue("")
	p.cursor = 0
	p.input.Focus()
	if p.searchFn != nil {
		p.items = p.searchFn("")
	}
}

func (p *Picker) Hide() {
	p.visible = false
	p.input.Blur()
}

func (p Picker) Visible() bool {
	return p.visible
}

func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			return p, func() tea.Msg { return PickerClosedMsg{} }

		case "enter":
			if p.cursor < len(p.items) {
				item := p.items[p.cursor]
				p.visible = false
				return p, func() tea.Msg {
					return PickedMsg{Handle: item.Handle}
				}
			}
			// No results: offer to start a thread with this title.
			query := strings.TrimSpace(p.input.Value())
			if query != "" {
				return p, func() tea.Msg {
					return PickerCreateMsg{Title: query}
				}
			}
			return p, nil

		case "up", "ctrl+p", "ctrl+k":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case "down", "ctrl+n", "ctrl+j":
			if p.cursor < len(p.items)-1 {
				p.cursor++
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	prevValue := p.input.Value()
	p.input, cmd = p.input.Update(msg)

	// Re-search on input change
	if p.input.Value() != prevValue && p.searchFn != nil {
		p.items = p.searchFn(p.input.Value())
		p.cursor = 0
	}

	return p, cmd
}

func (p Picker) View() string {
	if !p.visible {
		return ""
	}

	th := p.theme

	width := p.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Accent).
		Padding(0, 1).
		Width(innerWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Accent)

	var lines []string
	lines = append(lines, titleStyle.Render("Open Content"))
	lines = append(lines, p.input.View())
	lines = append(lines, "")

	maxResults := p.height/2 - 4
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > len(p.items) {
		maxResults = len(p.items)
	}

	if len(p.items) == 0 {
		dim := lipgloss.NewStyle().Foreground(th.Dim)
		lines = append(lines, dim.Render("No results"))

		query := strings.TrimSpace(p.input.Value())
		if query != "" {
			lines = append(lines, "")
			lines = append(lines, dim.Render(fmt.Sprintf("Enter: start thread %q", query)))
			lines = append(lines, dim.Render("Esc: cancel"))
		}
	} else {
		for i := 0; i < maxResults; i++ {
			item := p.items[i]
			prefix := "  "
			style := lipgloss.NewStyle().Foreground(th.Text)

			if i == p.cursor {
				prefix = "> "
				style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
			}

			line := fmt.Sprintf("%s%s", prefix, item.Title)
			if item.Extra != "" {
				dim := lipgloss.NewStyle().Foreground(th.Dim)
				line += " " + dim.Render(item.Extra)
			}

			if lipgloss.Width(line) > innerWidth {
				line = line[:innerWidth-3] + "..."
			}

			lines = append(lines, style.Render(line))
		}

		if len(p.items) > maxResults {
			dim := lipgloss.NewStyle().Foreground(th.Dim)
			lines = append(lines, dim.Render(fmt.Sprintf("  ... and %d more", len(p.items)-maxResults)))
		}
	}

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width/2 - 8
}
