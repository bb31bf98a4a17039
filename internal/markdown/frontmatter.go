package markdown

import (
	"bufio"
	"bytes"
	"strings"
	"time"
)

// Meta is the parsed YAML frontmatter of a document. Only flat key: value
// pairs are understood, which is all the library writes.
type Meta struct {
	Title   string
	Date    time.Time
	Tags    []string
	Raw     map[string]string
	EndLine int // line of the closing delimiter, 1-based
}

// HasTag reports whether tag appears in the frontmatter tags.
func (m *Meta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ExtractMeta parses --- delimited frontmatter from the head of source.
// Returns nil when there is none, or when the block is unclosed.
func ExtractMeta(source []byte) *Meta {
	scanner := bufio.NewScanner(bytes.NewReader(source))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	m := &Meta{Raw: make(map[string]string)}

	lineNum := 1
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if strings.TrimSpace(line) == "---" {
			m.EndLine = lineNum
			break
		}

		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		m.Raw[key] = val

		switch key {
		case "title":
			m.Title = val
		case "date":
			if t, err := time.Parse("2006-01-02", val); err == nil {
				m.Date = t
			}
		case "tags":
			val = strings.Trim(val, "[]")
			for _, tag := range strings.Split(val, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					m.Tags = append(m.Tags, tag)
				}
			}
		}
	}

	if m.EndLine == 0 {
		return nil
	}
	return m
}
