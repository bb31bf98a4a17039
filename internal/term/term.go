// Package term runs a shell inside a PTY and renders it through a VT
// emulator, backing the terminal pane kind.
package term

import (
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creack/pty"
)

// OutputMsg carries PTY output for one terminal instance.
type OutputMsg struct {
	ID   int
	Data []byte
}

// ClosedMsg reports that a terminal's shell exited.
type ClosedMsg struct {
	ID  int
	Err error
}

type errorMsg struct {
	id  int
	err error
}

// Terminal is a pane-sized shell session. Unlike a fullscreen program it
// tracks its own pane dimensions; the workspace resizes it as the layout
// changes.
type Terminal struct {
	id     int
	shell  string
	dir    string
	width  int
	height int

	cmd    *exec.Cmd
	file   *os.File
	screen *screen
	err    error
}

// New creates a terminal that will run shell in dir. The id tags this
// instance's messages so several terminal panes can coexist.
func New(id int, shell, dir string) *Terminal {
	return &Terminal{id: id, shell: shell, dir: dir}
}

// ID returns the instance tag.
func (t *Terminal) ID() int { return t.id }

// Running reports whether the shell has started and not yet exited.
func (t *Terminal) Running() bool { return t.file != nil }

// Start launches the shell at the current pane size and begins reading
// its output.
func (t *Terminal) Start() tea.Cmd {
	return func() tea.Msg {
		cmd := exec.Command(t.shell)
		cmd.Dir = t.dir
		cmd.Env = append(os.Environ(), "TERM=xterm-256color")

		w, h := t.width, t.height
		if w < 1 {
			w = 80
		}
		if h < 1 {
			h = 24
		}
		ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
			Rows: uint16(h),
			Cols: uint16(w),
		})
		if err != nil {
			return errorMsg{t.id, fmt.Errorf("start shell: %w", err)}
		}

		t.cmd = cmd
		t.file = ptmx
		t.screen = newScreen(w, h, ptmx)
		return OutputMsg{ID: t.id}
	}
}

// waitForOutput reads the next chunk of PTY output.
func (t *Terminal) waitForOutput() tea.Msg {
	buf := make([]byte, 32*1024)
	n, err := t.file.Read(buf)
	if err != nil {
		return ClosedMsg{ID: t.id, Err: err}
	}
	return OutputMsg{ID: t.id, Data: buf[:n]}
}

// Update handles this terminal's messages. Output messages for other
// instances must be routed elsewhere by the caller.
func (t *Terminal) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OutputMsg:
		if msg.ID != t.id {
			return nil
		}
		if t.screen != nil && len(msg.Data) > 0 {
			t.screen.write(msg.Data)
		}
		return t.waitForOutput

	case errorMsg:
		if msg.id == t.id {
			t.err = msg.err
		}
		return nil

	case tea.KeyMsg:
		if t.file == nil {
			return nil
		}
		if raw := keyMsgToBytes(msg); raw != nil {
			t.file.Write(raw)
		}
		return nil
	}
	return nil
}

// SetSize resizes the pane, propagating to the PTY and emulator.
func (t *Terminal) SetSize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	if t.file != nil {
		pty.Setsize(t.file, &pty.Winsize{
			Rows: uint16(height),
			Cols: uint16(width),
		})
		t.screen.resize(width, height)
	}
}

// SetShowCursor toggles the cursor overlay; only the focused pane shows
// one.
func (t *Terminal) SetShowCursor(show bool) {
	if t.screen != nil {
		t.screen.setShowCursor(show)
	}
}

// View renders the emulator contents.
func (t *Terminal) View() string {
	if t.err != nil {
		return fmt.Sprintf("terminal error: %v", t.err)
	}
	if t.screen == nil {
		return "starting shell..."
	}
	return t.screen.render()
}

// Close tears down the shell and emulator.
func (t *Terminal) Close() {
	if t.screen != nil {
		t.screen.close()
	}
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}
	if t.cmd != nil {
		t.cmd.Wait()
	}
}
