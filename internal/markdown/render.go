package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/loom/internal/theme"
	"github.com/yuin/goldmark/ast"
)

// Renderer turns a parsed Doc into styled terminal text for document
// panes. Scrolling is the pane's problem; Render always produces the full
// document.
type Renderer struct {
	theme *theme.Theme

	heading lipgloss.Style
	subhead lipgloss.Style
	body    lipgloss.Style
	code    lipgloss.Style
	quote   lipgloss.Style
	rule    lipgloss.Style
	link    lipgloss.Style
}

func NewRenderer(t *theme.Theme) *Renderer {
	return &Renderer{
		theme:   t,
		heading: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		subhead: lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		body:    lipgloss.NewStyle().Foreground(t.Text),
		code:    lipgloss.NewStyle().Foreground(t.Subtle),
		quote:   lipgloss.NewStyle().Italic(true).Foreground(t.Subtle),
		rule:    lipgloss.NewStyle().Foreground(t.Border),
		link:    lipgloss.NewStyle().Underline(true).Foreground(t.Accent),
	}
}

// Render produces the document body as styled lines wrapped to width.
func (r *Renderer) Render(d *Doc, width int) string {
	if width < 1 {
		return ""
	}

	var blocks []string
	for n := d.root.FirstChild(); n != nil; n = n.NextSibling() {
		if block := r.renderBlock(n, d.body, width); block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (r *Renderer) renderBlock(n ast.Node, source []byte, width int) string {
	switch b := n.(type) {
	case *ast.Heading:
		style := r.subhead
		text := blockText(b, source)
		if b.Level == 1 {
			style = r.heading
		}
		prefix := strings.Repeat("#", b.Level) + " "
		return style.Width(width).Render(prefix + text)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var sb strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}
		return r.code.Render(strings.TrimRight(sb.String(), "\n"))

	case *ast.Blockquote:
		var inner []string
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			inner = append(inner, blockText(c, source))
		}
		return r.quote.Width(width).Render("> " + strings.Join(inner, " "))

	case *ast.List:
		var items []string
		marker := "- "
		if b.IsOrdered() {
			marker = "1. "
		}
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			items = append(items, r.body.Width(width).Render(marker+itemText(c, source)))
		}
		return strings.Join(items, "\n")

	case *ast.ThematicBreak:
		return r.rule.Render(strings.Repeat("─", width))

	case *ast.Paragraph:
		return r.styleLinks(r.body.Width(width).Render(blockText(b, source)))

	default:
		text := blockText(n, source)
		if text == "" {
			return ""
		}
		return r.body.Width(width).Render(text)
	}
}

// styleLinks highlights [[wiki links]] inside already-rendered text.
func (r *Renderer) styleLinks(s string) string {
	for {
		start := strings.Index(s, "[[")
		if start == -1 {
			return s
		}
		end := strings.Index(s[start:], "]]")
		if end == -1 {
			return s
		}
		end += start + 2
		l := parseLink(s[start+2:end-2], 0, 0)
		s = s[:start] + r.link.Render(l.Display()) + s[end:]
	}
}

// blockText joins a block node's raw line segments into a single string.
func blockText(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

// itemText flattens a list item, which nests its text under paragraphs.
func itemText(n ast.Node, source []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, source); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
