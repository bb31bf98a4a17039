package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/loom/internal/config"
	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/layout"
	"github.com/pfassina/loom/internal/panel"
)

// command is one leader-table action: its config name, help label, and
// effect. The key it binds to comes from Config.Keybinds.
type command struct {
	action string
	label  string
	run    func(a *App)
}

// commands lists every rebindable action in help-display order.
// Lowercase hjkl move focus; their shifted variants move the pane itself.
var commands = []command{
	{"split-right", "split right", func(a *App) { a.ws.Split(layout.Vertical, content.Handle{}) }},
	{"split-down", "split down", func(a *App) { a.ws.Split(layout.Horizontal, content.Handle{}) }},
	{"focus-left", "focus left", func(a *App) { a.ws.FocusDirection(layout.Left) }},
	{"focus-down", "focus down", func(a *App) { a.ws.FocusDirection(layout.Down) }},
	{"focus-up", "focus up", func(a *App) { a.ws.FocusDirection(layout.Up) }},
	{"focus-right", "focus right", func(a *App) { a.ws.FocusDirection(layout.Right) }},
	{"move-left", "move pane left", func(a *App) { a.ws.MovePane(layout.Left) }},
	{"move-down", "move pane down", func(a *App) { a.ws.MovePane(layout.Down) }},
	{"move-up", "move pane up", func(a *App) { a.ws.MovePane(layout.Up) }},
	{"move-right", "move pane right", func(a *App) { a.ws.MovePane(layout.Right) }},
	{"close-pane", "close pane", func(a *App) { a.closeFocused() }},
	{"balance", "balance panes", func(a *App) { a.ws.Balance() }},
	{"zoom", "toggle zoom", func(a *App) { a.ws.ToggleZoom() }},
	{"find", "find content", func(a *App) { a.picker.Show() }},
	{"graph", "link graph", func(a *App) { a.openHandle(content.Handle{Kind: content.KindGraph}) }},
	{"terminal", "open terminal", func(a *App) { a.openHandle(content.Handle{Kind: content.KindTerminal}) }},
	{"new-note", "new note", func(a *App) { a.newNote() }},
	{"settings", "settings", func(a *App) { a.openHandle(content.Handle{Kind: content.KindSettings}) }},
	{"toggle-status", "toggle status bar", func(a *App) { a.state.ShowStatus = !a.state.ShowStatus }},
	{"help", "show keys", func(a *App) {
		a.help.SetEntries(a.helpEntries())
		a.help.Show()
	}},
	{"quit", "quit", func(a *App) {
		a.Close()
		a.defer_(tea.Quit)
	}},
}

// registerBindings fills the leader command table, applying any [keybinds]
// overrides from the config. The table is a stable cell: rebinding goes
// through it, the dispatcher wiring never changes.
func (a *App) registerBindings() {
	t := a.disp.Table()
	defaults := config.DefaultKeybinds()

	for _, c := range commands {
		key := defaults[c.action]
		if k, ok := a.cfg.Keybinds[c.action]; ok && k != "" {
			key = k
		}
		run := c.run
		t.Bind(key, c.label, func() { run(a) })
	}

	// g is a fixed zoom alias alongside z.
	t.Bind("g", "toggle zoom", func() { a.ws.ToggleZoom() })

	// Jump keys are fixed; a digit always selects the pane with that
	// ordinal.
	for n := 1; n <= 9; n++ {
		n := n
		t.Bind(fmt.Sprintf("%d", n), fmt.Sprintf("jump to pane %d", n), func() {
			a.ws.JumpToPane(n)
		})
	}
}

// helpEntries builds the help overlay from the live table, folding the
// nine jump bindings into a single row.
func (a *App) helpEntries() []panel.HelpEntry {
	bindings := a.disp.Table().Bindings()
	entries := make([]panel.HelpEntry, 0, len(bindings))
	jump := false
	for _, b := range bindings {
		if len(b.Key) == 1 && b.Key[0] >= '1' && b.Key[0] <= '9' {
			jump = true
			continue
		}
		entries = append(entries, panel.HelpEntry{Key: b.Key, Label: b.Label})
	}
	if jump {
		entries = append(entries, panel.HelpEntry{Key: "1-9", Label: "jump to pane"})
	}
	return entries
}
