// Package app is the Bubble Tea root model: it owns the workspace, routes
// keys through the leader dispatcher, and renders the pane grid.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/loom/internal/config"
	"github.com/pfassina/loom/internal/content"
	"github.com/pfassina/loom/internal/index"
	"github.com/pfassina/loom/internal/layout"
	"github.com/pfassina/loom/internal/leader"
	"github.com/pfassina/loom/internal/markdown"
	"github.com/pfassina/loom/internal/panel"
	"github.com/pfassina/loom/internal/session"
	"github.com/pfassina/loom/internal/term"
	"github.com/pfassina/loom/internal/theme"
	"github.com/pfassina/loom/internal/workspace"
)

// provider renders one pane's content and receives its input.
type provider interface {
	SetSize(width, height int)
	Update(msg tea.Msg) tea.Cmd
	View() string
}

type App struct {
	cfg     config.Config
	library *content.Library
	ws      *workspace.Workspace
	disp    *leader.Dispatcher

	providers map[layout.PaneID]provider
	// termPanes maps a terminal's ID to the pane hosting it, for routing
	// PTY output messages.
	termPanes map[int]layout.PaneID
	termSeq   int

	status panel.Status
	help   panel.Help
	picker panel.Picker
	prompt panel.Prompt

	db      *index.DB
	indexer *index.Indexer
	watcher *index.Watcher

	store *session.Store
	state session.State

	program *tea.Program
	theme   theme.Theme
	width   int
	height  int

	// cells is the current pane grid, recomputed on every structural
	// change and resize. View reads it; never compute layout in View.
	cells map[layout.PaneID]cellRect

	// deferred collects commands produced inside leader actions, which
	// run as plain func() and cannot return a tea.Cmd themselves.
	deferred []tea.Cmd
}

func New(cfg config.Config) *App {
	a := &App{
		cfg:       cfg,
		library:   content.NewLibrary(cfg.LibraryPath),
		ws:        workspace.New(),
		providers: make(map[layout.PaneID]provider),
		termPanes: make(map[int]layout.PaneID),
		theme:     theme.Named(cfg.Theme),
		store:     session.NewStore(cfg.LibraryPath),
	}

	state, _ := a.store.Load()
	a.state = state
	a.state.ShowStatus = cfg.ShowStatus && state.ShowStatus

	table := leader.NewTable()
	a.disp = leader.New(table)
	if cfg.LeaderTimeout > 0 {
		a.disp.ArmTimeout = time.Duration(cfg.LeaderTimeout) * time.Millisecond
	}

	a.status = panel.NewStatus(&a.theme)
	a.help = panel.NewHelp(cfg.LeaderKey, &a.theme)
	a.picker = panel.NewPicker(&a.theme)
	a.prompt = panel.NewPrompt(&a.theme)

	a.ws.OnOpen(a.openProvider)
	a.ws.OnClose(a.closeProvider)
	// A fresh split has nothing to show; the picker's choice lands in it
	// because the new pane holds focus and the picker is modal.
	a.ws.OnNeedsContent(func(layout.PaneID) { a.picker.Show() })

	dbPath := filepath.Join(cfg.LibraryPath, ".loom", "index.db")
	ensureDir(filepath.Dir(dbPath))
	db, err := index.Open(dbPath)
	if err != nil {
		// Keep the app usable: without an index the picker and graph
		// fall back to empty results.
		a.status.SetError(fmt.Sprintf("index open failed: %v", err))
	} else {
		a.db = db
		a.indexer = index.NewIndexer(db, a.library)
	}
	a.picker.SetSearchFunc(a.searchContent)

	a.registerBindings()
	a.restoreContent()

	return a
}

// restoreContent reopens the last content from the previous session in the
// initial pane. The pane arrangement itself always starts as a single pane.
func (a *App) restoreContent() {
	h, err := content.ParseHandle(a.state.LastContent)
	if err != nil || h.Zero() {
		return
	}
	if h.Ref != "" {
		if _, err := os.Stat(a.library.Abs(h.Ref)); err != nil {
			return
		}
	}
	a.ws.Open(h)
}

// SetProgram hands the app its running program so background goroutines
// (the library watcher, PTY readers) can send messages into the loop.
func (a *App) SetProgram(p *tea.Program) { a.program = p }

// Program returns the program set via SetProgram, or nil before startup.
func (a *App) Program() *tea.Program { return a.program }

func (a *App) Init() tea.Cmd {
	cmds := append(a.takeDeferred(), a.initIndex())
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case leaderExpireMsg:
		if a.disp.Expire(msg.gen) {
			a.syncStatus()
		}
		return a, nil

	case leaderSettleMsg:
		a.disp.ClearPending(msg.gen)
		a.syncStatus()
		return a, nil

	case tea.WindowSizeMsg:
		// Some terminals send transient 0x0 sizes during live resizes;
		// ignore them.
		if msg.Width <= 0 || msg.Height <= 0 {
			return a, nil
		}
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(msg.Width, msg.Height)
		a.help.SetWidth(msg.Width / 2)

		promptW := msg.Width * 4 / 5
		if promptW > 80 {
			promptW = 80
		}
		if promptW < 30 {
			promptW = 30
		}
		a.prompt.SetSize(promptW, msg.Height)

		a.syncLayout()
		a.syncStatus()
		// Force a full repaint; partial redraws after a resize can leave
		// stale cells behind.
		return a, tea.ClearScreen

	case term.OutputMsg:
		if p, ok := a.termProvider(msg.ID); ok {
			return a, p.Update(msg)
		}
		return a, nil

	case term.ClosedMsg:
		a.closeTermPane(msg.ID)
		return a, nil

	case panel.PickedMsg:
		a.openHandle(msg.Handle)
		return a, tea.Batch(a.takeDeferred()...)

	case panel.PickerCreateMsg:
		a.prompt.Show("Start thread", msg.Title)
		return a, nil

	case panel.PickerClosedMsg:
		return a, nil

	case panel.PromptResultMsg:
		a.picker.Hide()
		a.createThread(msg.Value)
		return a, tea.Batch(a.takeDeferred()...)

	case panel.PromptCancelledMsg:
		return a, nil

	case libraryChangedMsg:
		a.refreshContent()
		return a, nil

	case indexReadyMsg:
		if msg.err != nil {
			// Fail fast and loud: indexing backs search and the graph.
			return a, fatalCmd(fmt.Errorf("indexing failed: %w", msg.err))
		}
		return a, a.startWatcher()

	case fatalErrorMsg:
		return a, fatalCmd(msg.err)
	}

	// Non-key messages (cursor blinks, PTY reads) go to whichever input
	// sink is active.
	var cmd tea.Cmd
	switch {
	case a.prompt.Visible():
		a.prompt, cmd = a.prompt.Update(msg)
	case a.picker.Visible():
		a.picker, cmd = a.picker.Update(msg)
	default:
		if p := a.focusedProvider(); p != nil {
			cmd = p.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+q" {
		a.Close()
		return a, tea.Quit
	}

	// Overlays swallow keys while visible.
	if a.prompt.Visible() {
		var cmd tea.Cmd
		a.prompt, cmd = a.prompt.Update(msg)
		return a, cmd
	}
	if a.picker.Visible() {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}
	if a.help.Visible() {
		a.help.Hide()
		return a, nil
	}

	if a.disp.Armed() {
		// Leader pressed twice sends the chord through to the pane.
		if key == a.cfg.LeaderKey {
			a.disp.Cancel()
			a.syncStatus()
			return a, a.forwardKey(msg)
		}
		bind, gen, consumed := a.disp.HandleKey(key)
		if consumed {
			if bind.Run != nil {
				bind.Run()
			}
			cmds := a.takeDeferred()
			a.syncLayout()
			a.syncStatus()
			cmds = append(cmds, a.settleTick(gen))
			return a, tea.Batch(cmds...)
		}
		return a, nil
	}

	if key == a.cfg.LeaderKey {
		gen := a.disp.Arm()
		a.syncStatus()
		return a, a.expireTick(gen)
	}

	if key == "ctrl+c" && !a.focusedIsTerminal() {
		a.Close()
		return a, tea.Quit
	}

	return a, a.forwardKey(msg)
}

// forwardKey delivers a key to the focused pane's content.
func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	if p := a.focusedProvider(); p != nil {
		return p.Update(msg)
	}
	return nil
}

func (a *App) focusedProvider() provider {
	return a.providers[a.ws.Focused()]
}

func (a *App) focusedIsTerminal() bool {
	_, ok := a.focusedProvider().(*term.Terminal)
	return ok
}

func (a *App) expireTick(gen int) tea.Cmd {
	return tea.Tick(a.disp.ArmTimeout, func(time.Time) tea.Msg {
		return leaderExpireMsg{gen: gen}
	})
}

func (a *App) settleTick(gen int) tea.Cmd {
	return tea.Tick(a.disp.SettleDelay, func(time.Time) tea.Msg {
		return leaderSettleMsg{gen: gen}
	})
}

// defer_ queues a command produced inside a leader action.
func (a *App) defer_(cmd tea.Cmd) {
	if cmd != nil {
		a.deferred = append(a.deferred, cmd)
	}
}

func (a *App) takeDeferred() []tea.Cmd {
	cmds := a.deferred
	a.deferred = nil
	return cmds
}

// openHandle shows h in the focused pane and records it in the session.
func (a *App) openHandle(h content.Handle) {
	a.status.ClearError()
	a.ws.Open(h)
	a.state.Touch(h.String())
	a.syncLayout()
	a.syncStatus()
}

// closeFocused closes the focused pane unless it is the last one.
func (a *App) closeFocused() {
	if !a.ws.Close() {
		a.status.SetError("cannot close the last pane")
	}
}

// openProvider is the workspace open callback: it builds whatever the
// handle's kind needs to render.
func (a *App) openProvider(id layout.PaneID, h content.Handle) {
	switch h.Kind {
	case content.KindThread, content.KindNote, content.KindPodcast:
		dv := panel.NewDocView(a.library, &a.theme, a.backlinksFor)
		dv.Load(h.Ref)
		a.providers[id] = dv

	case content.KindGraph:
		a.providers[id] = panel.NewGraph(a.edges, &a.theme)

	case content.KindTerminal:
		a.termSeq++
		t := term.New(a.termSeq, a.cfg.Shell, a.cfg.LibraryPath)
		a.termPanes[t.ID()] = id
		a.providers[id] = t
		a.defer_(t.Start())

	case content.KindSettings:
		a.providers[id] = panel.NewSettings(a.cfg, &a.theme)

	default:
		delete(a.providers, id)
	}
}

// closeProvider is the workspace close callback.
func (a *App) closeProvider(id layout.PaneID, h content.Handle) {
	if t, ok := a.providers[id].(*term.Terminal); ok {
		t.Close()
		delete(a.termPanes, t.ID())
	}
	delete(a.providers, id)
}

func (a *App) termProvider(termID int) (provider, bool) {
	id, ok := a.termPanes[termID]
	if !ok {
		return nil, false
	}
	p, ok := a.providers[id]
	return p, ok
}

// closeTermPane closes the pane whose shell exited. Focus returns to the
// previously focused pane when it wasn't the one that died.
func (a *App) closeTermPane(termID int) {
	id, ok := a.termPanes[termID]
	if !ok {
		return
	}
	prev := a.ws.Focused()
	a.ws.Tree().Focus(id)
	a.ws.Close()
	if prev != id && a.ws.Tree().Contains(prev) {
		a.ws.Tree().Focus(prev)
	}
	a.syncLayout()
	a.syncStatus()
}

// refreshContent reloads document panes and invalidates graphs after the
// library changed on disk.
func (a *App) refreshContent() {
	for _, p := range a.providers {
		switch p := p.(type) {
		case *panel.DocView:
			p.Reload()
		case *panel.Graph:
			p.Invalidate()
		}
	}
}

func (a *App) startWatcher() tea.Cmd {
	if a.indexer == nil || a.watcher != nil {
		return nil
	}
	w, err := index.NewWatcher(a.indexer, a.cfg.LibraryPath, func() {
		if a.program != nil {
			a.program.Send(libraryChangedMsg{})
		}
	})
	if err != nil {
		return fatalCmd(fmt.Errorf("watcher init failed: %w", err))
	}
	w.OnError(func(err error) {
		if a.program != nil {
			a.program.Send(fatalErrorMsg{err: err})
		}
	})
	a.watcher = w
	go w.Start()
	return nil
}

// contentHeight returns the rows available to the pane grid.
func (a *App) contentHeight() int {
	h := a.height
	if a.state.ShowStatus {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// syncLayout recomputes the cell grid and pushes sizes into providers.
// Terminal panes resize their PTYs here.
func (a *App) syncLayout() {
	if a.width == 0 || a.height == 0 {
		return
	}

	rects := a.ws.Tree().Rects()
	if z := a.ws.Zoomed(); z != 0 && a.ws.Tree().Contains(z) {
		rects = map[layout.PaneID]layout.Rect{z: {X: 0, Y: 0, W: 1, H: 1}}
	}
	a.cells = scalePanes(rects, a.width, a.contentHeight())

	for id, c := range a.cells {
		if p := a.providers[id]; p != nil {
			w, h := innerSize(c)
			p.SetSize(w, h)
		}
	}

	// Only the focused terminal shows its cursor.
	focused := a.ws.Focused()
	for id, p := range a.providers {
		if t, ok := p.(*term.Terminal); ok {
			t.SetShowCursor(id == focused)
		}
	}

	a.status.SetWidth(a.width)
}

func (a *App) syncStatus() {
	var focused workspace.Pane
	panes := a.ws.Panes()
	for _, p := range panes {
		if p.Focused {
			focused = p
		}
	}
	a.status.SetPane(a.paneTitle(focused), focused.Ordinal, len(panes))
	a.status.SetLeader(a.disp.Armed(), a.disp.Pending())
	a.status.SetZoomed(a.ws.Zoomed() != 0)
}

// paneTitle names a pane for the status bar and its title row.
func (a *App) paneTitle(p workspace.Pane) string {
	h := p.Handle
	switch h.Kind {
	case content.KindThread, content.KindNote, content.KindPodcast:
		if dv, ok := a.providers[p.ID].(*panel.DocView); ok {
			return dv.Title()
		}
		return markdown.DocName(h.Ref)
	case content.KindNone:
		return "empty"
	default:
		return h.Kind.String()
	}
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.width < 40 || a.height < 10 {
		msg := fmt.Sprintf("Window too small (%dx%d)\nMinimum supported: 40x10", a.width, a.height)
		box := lipgloss.NewStyle().Foreground(a.theme.Text).Padding(1, 2).Render(msg)
		base := strings.Repeat("\n", a.height)
		return overlayCenter(base, box, a.width, a.height)
	}

	if a.cells == nil {
		a.syncLayout()
	}

	canvas := blankCanvas(a.width, a.contentHeight())
	for _, p := range a.ws.Panes() {
		c, ok := a.cells[p.ID]
		if !ok {
			continue // hidden behind a zoomed pane
		}
		canvas = overlayAt(canvas, a.renderPane(p, c), c.X, c.Y, a.width)
	}

	result := canvas
	if a.state.ShowStatus {
		result += "\n" + a.status.View()
	}

	if a.help.Visible() {
		if v := a.help.View(); v != "" {
			result = overlayCenter(result, v, a.width, a.height)
		}
	}
	if a.picker.Visible() {
		if v := a.picker.View(); v != "" {
			result = overlayCenter(result, v, a.width, a.height)
		}
	}
	if a.prompt.Visible() {
		if v := a.prompt.View(); v != "" {
			result = overlayCenter(result, v, a.width, a.height)
		}
	}

	return result
}

// renderPane draws one pane: border, title row, content clipped to fit.
func (a *App) renderPane(p workspace.Pane, c cellRect) string {
	innerW, innerH := innerSize(c)

	borderColor := a.theme.Border
	if p.Focused {
		borderColor = a.theme.Focus
		if a.ws.Zoomed() == p.ID {
			borderColor = a.theme.Zoomed
		}
	}

	titleStyle := lipgloss.NewStyle().Foreground(a.theme.Dim).MaxWidth(innerW)
	if p.Focused {
		titleStyle = titleStyle.Foreground(a.theme.Accent).Bold(true)
	}
	title := titleStyle.Render(fmt.Sprintf("%d %s", p.Ordinal, a.paneTitle(p)))

	body := ""
	if prov := a.providers[p.ID]; prov != nil {
		body = prov.View()
	} else {
		body = lipgloss.NewStyle().Foreground(a.theme.Dim).
			Render(fmt.Sprintf("empty\n%s f to open content", a.cfg.LeaderKey))
	}
	inner := lipgloss.NewStyle().
		Width(innerW).Height(innerH).
		MaxWidth(innerW).MaxHeight(innerH).
		Render(body)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerW).
		Render(title + "\n" + inner)
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Save(a.state); err != nil {
			fmt.Fprintln(os.Stderr, "save session state:", err)
		}
	}

	for id, p := range a.providers {
		if t, ok := p.(*term.Terminal); ok {
			t.Close()
		}
		delete(a.providers, id)
	}
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, "stop watcher:", err)
		}
		a.watcher = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close index:", err)
		}
		a.db = nil
	}
}

func blankCanvas(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// overlayAt composites overlay onto base with its top-left corner at
// (col, row), without breaking ANSI sequences in either string.
func overlayAt(base, overlay string, col, row, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	for i, overlayLine := range overlayLines {
		r := row + i
		if r < 0 || r >= len(baseLines) {
			continue
		}

		baseLine := baseLines[r]
		// Pad with spaces based on *visible* width (handles ANSI safely).
		for lipgloss.Width(baseLine) < col {
			baseLine += " "
		}
		// Pad the overlay line so every row covers the full overlay width.
		for lipgloss.Width(overlayLine) < overlayWidth {
			overlayLine += " "
		}

		left := ansi.Cut(baseLine, 0, col)
		right := ansi.Cut(baseLine, col+overlayWidth, width)

		baseLines[r] = ansi.Truncate(left+overlayLine+right, width, "")
	}

	return strings.Join(baseLines, "\n")
}

func overlayCenter(base, overlay string, width, height int) string {
	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := lipgloss.Width(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	row := (height - len(overlayLines)) / 2
	col := (width - overlayWidth) / 2
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return overlayAt(base, overlay, col, row, width)
}

func ensureDir(path string) {
	if err := os.MkdirAll(path, 0755); err != nil {
		// Called during startup; there is no Bubble Tea program to
		// report to yet. Crash loudly rather than continuing in a
		// corrupted state.
		panic(err)
	}
}
