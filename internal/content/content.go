// Package content defines what a pane can display: a Handle names a piece
// of content, the Library manages the markdown files backing most kinds.
package content

import (
	"fmt"
	"strings"
)

// Kind classifies what a pane shows.
type Kind int

const (
	KindNone Kind = iota
	KindThread
	KindNote
	KindGraph
	KindPodcast
	KindTerminal
	KindSettings
)

func (k Kind) String() string {
	switch k {
	case KindThread:
		return "thread"
	case KindNote:
		return "note"
	case KindGraph:
		return "graph"
	case KindPodcast:
		return "podcast"
	case KindTerminal:
		return "terminal"
	case KindSettings:
		return "settings"
	default:
		return "empty"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "thread":
		return KindThread, true
	case "note":
		return KindNote, true
	case "graph":
		return KindGraph, true
	case "podcast":
		return KindPodcast, true
	case "terminal":
		return KindTerminal, true
	case "settings":
		return KindSettings, true
	case "empty", "":
		return KindNone, true
	default:
		return KindNone, false
	}
}

// Handle identifies one piece of content. Ref is kind-specific: a
// library-relative path for threads, notes and podcast episodes, empty for
// graph, terminal and settings.
type Handle struct {
	Kind Kind
	Ref  string
}

// String renders a handle as "kind:ref", the form the session store and
// status bar use.
func (h Handle) String() string {
	if h.Ref == "" {
		return h.Kind.String()
	}
	return h.Kind.String() + ":" + h.Ref
}

// ParseHandle parses the "kind:ref" form.
func ParseHandle(s string) (Handle, error) {
	kind, ref, _ := strings.Cut(s, ":")
	k, ok := ParseKind(kind)
	if !ok {
		return Handle{}, fmt.Errorf("unknown content kind %q", kind)
	}
	return Handle{Kind: k, Ref: ref}, nil
}

// Zero reports whether the handle names nothing.
func (h Handle) Zero() bool { return h.Kind == KindNone && h.Ref == "" }
