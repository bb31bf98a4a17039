package panel

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/index"
	"github.com/pfassina/loom/internal/markdown"
	"github.com/pfassina/loom/internal/theme"
)

// EdgesFunc returns the library's resolved link edges.
type EdgesFunc func() []index.Edge

// Graph shows the wiki-link structure of the library as an adjacency
// listing: each document with its outgoing and incoming link counts and
// targets.
type Graph struct {
	edges  EdgesFunc
	theme  *theme.Theme
	scroll int
	width  int
	height int
	cached []string
	stale  bool
}

func NewGraph(edges EdgesFunc, th *theme.Theme) *Graph {
	return &Graph{edges: edges, theme: th, stale: true}
}

// Invalidate forces a rebuild on the next View; the watcher calls this
// when the index changes.
func (g *Graph) Invalidate() { g.stale = true }

func (g *Graph) SetSize(width, height int) {
	g.width = width
	g.height = height
}

func (g *Graph) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if g.scroll > 0 {
			g.scroll--
		}
	case "down", "j":
		g.scroll++
	case "g":
		g.scroll = 0
	case "r":
		g.stale = true
	}
	return nil
}

func (g *Graph) View() string {
	if g.width < 1 || g.height < 1 {
		return ""
	}
	if g.stale {
		g.rebuild()
	}

	lines := g.cached
	maxScroll := len(lines) - g.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if g.scroll > maxScroll {
		g.scroll = maxScroll
	}
	end := g.scroll + g.height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[g.scroll:end], "\n")
}

func (g *Graph) rebuild() {
	g.stale = false

	type node struct {
		out []string
		in  int
	}
	nodes := make(map[string]*node)
	get := func(path string) *node {
		n, ok := nodes[path]
		if !ok {
			n = &node{}
			nodes[path] = n
		}
		return n
	}

	for _, e := range g.edges() {
		src := get(e.SourcePath)
		src.out = append(src.out, e.TargetPath)
		get(e.TargetPath).in++
	}

	paths := make([]string, 0, len(nodes))
	for p := range nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	title := lipgloss.NewStyle().Bold(true).Foreground(g.theme.Accent)
	name := lipgloss.NewStyle().Foreground(g.theme.Text)
	dim := lipgloss.NewStyle().Foreground(g.theme.Dim)
	arrow := lipgloss.NewStyle().Foreground(g.theme.Subtle)

	if len(paths) == 0 {
		g.cached = []string{dim.Render("no linked documents")}
		return
	}

	var lines []string
	lines = append(lines, title.Render(fmt.Sprintf("link graph (%d documents)", len(paths))))
	lines = append(lines, "")
	for _, p := range paths {
		n := nodes[p]
		lines = append(lines, name.Render(markdown.DocName(p))+dim.Render(fmt.Sprintf("  %d in / %d out", n.in, len(n.out))))
		sort.Strings(n.out)
		for _, t := range n.out {
			lines = append(lines, arrow.Render("  -> "+markdown.DocName(t)))
		}
	}
	g.cached = lines
}
