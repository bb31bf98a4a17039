package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Heading is one heading in a document.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-based
}

// headingsFromAST collects headings by walking the parsed tree, so setext
// headings and inline formatting are handled for free.
func headingsFromAST(root ast.Node, source []byte) []Heading {
	var headings []Heading

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		line := 0
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				seg := t.Segment
				sb.Write(seg.Value(source))
				if line == 0 {
					line = lineAt(source, seg.Start)
				}
			}
		}

		text := strings.TrimSpace(sb.String())
		if text != "" {
			headings = append(headings, Heading{Level: h.Level, Text: text, Line: line})
		}
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// Outline renders the heading list as an indented tree, one line per
// heading.
func Outline(headings []Heading) []string {
	out := make([]string, 0, len(headings))
	for _, h := range headings {
		out = append(out, strings.Repeat("  ", h.Level-1)+h.Text)
	}
	return out
}
