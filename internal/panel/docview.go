package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/markdown"
	"github.com/pfassina/loom/internal/theme"
)

// BacklinksFunc returns the paths of documents linking to rel.
type BacklinksFunc func(rel string) []string

// DocView displays one markdown document: threads, notes and podcast
// episode notes all render through it.
type DocView struct {
	library   *content.Library
	parser    *markdown.Parser
	renderer  *markdown.Renderer
	backlinks BacklinksFunc
	theme     *theme.Theme

	path   string
	doc    *markdown.Doc
	err    error
	scroll int
	width  int
	height int
}

func NewDocView(lib *content.Library, th *theme.Theme, backlinks BacklinksFunc) *DocView {
	return &DocView{
		library:   lib,
		parser:    markdown.NewParser(),
		renderer:  markdown.NewRenderer(th),
		backlinks: backlinks,
		theme:     th,
	}
}

// Load reads and parses a library-relative path.
func (d *DocView) Load(rel string) {
	d.path = rel
	d.scroll = 0
	d.Reload()
}

// Reload re-reads the current document, keeping the scroll position. The
// watcher calls this when the file changes on disk.
func (d *DocView) Reload() {
	if d.path == "" {
		return
	}
	source, err := d.library.Read(d.path)
	if err != nil {
		d.err = err
		d.doc = nil
		return
	}
	d.err = nil
	d.doc = d.parser.Parse(source)
}

// Path returns the loaded library-relative path.
func (d *DocView) Path() string { return d.path }

// Title returns the document's display title.
func (d *DocView) Title() string {
	if d.doc == nil {
		return markdown.DocName(d.path)
	}
	if t := d.doc.Title(); t != "" {
		return t
	}
	return markdown.DocName(d.path)
}

func (d *DocView) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update handles scroll keys. Everything else is ignored.
func (d *DocView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if d.scroll > 0 {
			d.scroll--
		}
	case "down", "j":
		d.scroll++
	case "pgup", "ctrl+u":
		d.scroll -= d.height / 2
		if d.scroll < 0 {
			d.scroll = 0
		}
	case "pgdown", "ctrl+d":
		d.scroll += d.height / 2
	case "g":
		d.scroll = 0
	}
	return nil
}

func (d *DocView) View() string {
	if d.width < 1 || d.height < 1 {
		return ""
	}
	if d.err != nil {
		return lipgloss.NewStyle().Foreground(d.theme.Error).Render(fmt.Sprintf("cannot read %s: %v", d.path, d.err))
	}
	if d.doc == nil {
		return lipgloss.NewStyle().Foreground(d.theme.Dim).Render("no document")
	}

	body := d.renderer.Render(d.doc, d.width)
	lines := strings.Split(body, "\n")

	if links := d.backlinkLines(); len(links) > 0 {
		lines = append(lines, "")
		lines = append(lines, links...)
	}

	// Clamp scroll so the last screen stays full.
	maxScroll := len(lines) - d.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if d.scroll > maxScroll {
		d.scroll = maxScroll
	}

	end := d.scroll + d.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[d.scroll:end], "\n")
}

func (d *DocView) backlinkLines() []string {
	if d.backlinks == nil {
		return nil
	}
	sources := d.backlinks(d.path)
	if len(sources) == 0 {
		return nil
	}

	dim := lipgloss.NewStyle().Foreground(d.theme.Dim)
	subtle := lipgloss.NewStyle().Foreground(d.theme.Subtle)

	out := []string{dim.Render(fmt.Sprintf("linked from %d:", len(sources)))}
	for _, s := range sources {
		out = append(out, subtle.Render("  "+s))
	}
	return out
}
