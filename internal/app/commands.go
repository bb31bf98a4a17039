package app

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/index"
	"github.com/pfassina/loom/internal/markdown"
	"github.com/pfassina/loom/internal/panel"
)

// initIndex runs the initial library scan in a goroutine.
func (a *App) initIndex() tea.Cmd {
	return func() tea.Msg {
		if a.indexer == nil {
			return indexReadyMsg{}
		}
		return indexReadyMsg{err: a.indexer.IndexAll()}
	}
}

// builtinItems lists the non-document content kinds the picker can open.
var builtinItems = []panel.PickerItem{
	{Title: "terminal", Handle: content.Handle{Kind: content.KindTerminal}, Extra: "shell"},
	{Title: "graph", Handle: content.Handle{Kind: content.KindGraph}, Extra: "links"},
	{Title: "settings", Handle: content.Handle{Kind: content.KindSettings}, Extra: "config"},
}

// searchContent returns picker items for a query: builtin kinds first,
// then library documents from the index.
func (a *App) searchContent(query string) []panel.PickerItem {
	var items []panel.PickerItem
	q := strings.ToLower(strings.TrimSpace(query))
	for _, b := range builtinItems {
		if q == "" || strings.Contains(b.Title, q) {
			items = append(items, b)
		}
	}

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		seen[it.Handle.String()] = true
	}

	// With an empty query, recently opened content comes before the full
	// library listing.
	if q == "" {
		for _, rec := range a.state.RecentContent {
			h, err := content.ParseHandle(rec)
			if err != nil || h.Ref == "" || seen[rec] {
				continue
			}
			items = append(items, panel.PickerItem{
				Title:  markdown.DocName(h.Ref),
				Handle: h,
				Extra:  "recent",
			})
			seen[rec] = true
		}
	}

	if a.db == nil {
		return items
	}

	var results []index.SearchResult
	var err error
	if q == "" {
		results, err = a.db.ListAll(50)
	} else {
		// FTS first, filename match as fallback.
		results, err = a.db.Search(query, 50)
		if err != nil || len(results) == 0 {
			results, err = a.db.SearchFiles(query, 50)
		}
	}
	if err != nil {
		return items
	}

	for _, r := range results {
		kind, ok := content.ParseKind(r.Kind)
		if !ok || kind == content.KindNone {
			continue
		}
		h := content.Handle{Kind: kind, Ref: r.Path}
		if seen[h.String()] {
			continue
		}
		items = append(items, panel.PickerItem{
			Title:  r.Title,
			Handle: h,
			Extra:  r.Path,
		})
		seen[h.String()] = true
	}
	return items
}

// backlinksFor returns the titles of documents linking to rel, for the
// document view footer.
func (a *App) backlinksFor(rel string) []string {
	if a.db == nil {
		return nil
	}
	backlinks, err := a.db.Backlinks(rel)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(backlinks))
	for _, bl := range backlinks {
		title := bl.SourceTitle
		if title == "" {
			title = bl.SourcePath
		}
		names = append(names, title)
	}
	return names
}

// edges returns the resolved link graph for graph panes.
func (a *App) edges() []index.Edge {
	if a.db == nil {
		return nil
	}
	edges, err := a.db.Edges()
	if err != nil {
		return nil
	}
	return edges
}

// newNote creates a scratch note and opens it in the focused pane.
func (a *App) newNote() {
	rel, err := a.library.CreateNote()
	if err != nil {
		a.status.SetError(err.Error())
		return
	}
	a.indexPath(rel)
	a.openHandle(content.Handle{Kind: content.KindNote, Ref: rel})
}

// createThread creates a named thread document and opens it.
func (a *App) createThread(title string) {
	rel, err := a.library.CreateThread(title)
	if err != nil {
		a.status.SetError(err.Error())
		return
	}
	a.indexPath(rel)
	a.openHandle(content.Handle{Kind: content.KindThread, Ref: rel})
}

// indexPath indexes a single just-created document so it is searchable
// before the watcher catches up.
func (a *App) indexPath(rel string) {
	if a.indexer == nil {
		return
	}
	if err := a.indexer.IndexFile(filepath.Join(a.cfg.LibraryPath, rel)); err != nil {
		a.status.SetError(err.Error())
	}
}
