package markdown

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
)

// Link is a [[wiki link]] between library documents. All four forms are
// understood: [[doc]], [[doc#section]], [[doc|alias]],
// [[doc#section|alias]].
type Link struct {
	Target  string
	Section string
	Alias   string
	Line    int // 1-based
	Col     int // 0-based
}

// Display returns what a pane should show for the link.
func (l Link) Display() string {
	if l.Alias != "" {
		return l.Alias
	}
	return l.Target
}

// ExtractLinks scans source for wiki links. Frontmatter is skipped;
// goldmark has no wikilink syntax, so this stays a line scan.
func ExtractLinks(source []byte) []Link {
	var links []Link
	scanner := bufio.NewScanner(bytes.NewReader(source))

	inMeta := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if lineNum == 1 && strings.TrimSpace(line) == "---" {
			inMeta = true
			continue
		}
		if inMeta {
			if strings.TrimSpace(line) == "---" {
				inMeta = false
			}
			continue
		}

		col := 0
		for col < len(line)-3 {
			idx := strings.Index(line[col:], "[[")
			if idx == -1 {
				break
			}
			start := col + idx + 2
			end := strings.Index(line[start:], "]]")
			if end == -1 {
				break
			}

			inner := line[start : start+end]
			col = start + end + 2
			if inner == "" {
				continue
			}
			links = append(links, parseLink(inner, lineNum, start-2))
		}
	}

	return links
}

func parseLink(inner string, line, col int) Link {
	l := Link{Line: line, Col: col}

	target := inner
	if t, rest, ok := strings.Cut(inner, "#"); ok {
		target = t
		if sec, alias, ok := strings.Cut(rest, "|"); ok {
			l.Section = sec
			l.Alias = alias
		} else {
			l.Section = rest
		}
	} else if t, alias, ok := strings.Cut(inner, "|"); ok {
		target = t
		l.Alias = alias
	}

	l.Target = strings.TrimSpace(target)
	l.Section = strings.TrimSpace(l.Section)
	l.Alias = strings.TrimSpace(l.Alias)
	return l
}

// ResolveTarget maps a link target to a library-relative path. Bare names
// get the .md extension appended.
func ResolveTarget(target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return ""
	}
	if strings.HasSuffix(target, ".md") {
		return target
	}
	return target + ".md"
}

// DocName returns the document name for a library path.
// "threads/go-errors.md" becomes "go-errors".
func DocName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
