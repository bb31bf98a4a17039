// Package markdown parses library documents: frontmatter, headings and
// wiki links for the index and graph, plus a terminal renderer for
// document panes.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parser wraps a goldmark instance. One Parser is shared by the indexer
// and every document pane.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{md: goldmark.New()}
}

// Doc is a parsed library document.
type Doc struct {
	Source   []byte
	Meta     *Meta
	Headings []Heading
	Links    []Link

	body []byte // source with frontmatter stripped
	root ast.Node
}

// Parse parses source into a Doc. Frontmatter is stripped before the
// markdown parse so its key: value lines cannot read as setext headings;
// heading line numbers are reported against the full source. The goldmark
// AST is retained for rendering.
func (p *Parser) Parse(source []byte) *Doc {
	d := &Doc{
		Source: source,
		Meta:   ExtractMeta(source),
		Links:  ExtractLinks(source),
	}
	d.body = d.stripMeta()
	d.root = p.md.Parser().Parse(text.NewReader(d.body))
	d.Headings = headingsFromAST(d.root, d.body)

	if d.Meta != nil {
		for i := range d.Headings {
			d.Headings[i].Line += d.Meta.EndLine
		}
	}
	return d
}

// Title returns the best available title: frontmatter, else the first
// level-1 heading, else empty.
func (d *Doc) Title() string {
	if d.Meta != nil && d.Meta.Title != "" {
		return d.Meta.Title
	}
	for _, h := range d.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Body returns the source with frontmatter stripped.
func (d *Doc) Body() []byte { return d.body }

func (d *Doc) stripMeta() []byte {
	if d.Meta == nil || d.Meta.EndLine == 0 {
		return d.Source
	}
	lines := bytes.SplitN(d.Source, []byte("\n"), d.Meta.EndLine+1)
	if len(lines) <= d.Meta.EndLine {
		return nil
	}
	return lines[d.Meta.EndLine]
}

// lineAt converts a byte offset in source to a 1-based line number.
func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}
