package ssh

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/loom/internal/app"
	"github.com/pfassina/loom/internal/config"
)

// NewProgramHandler returns a Bubble Tea program handler for SSH
// sessions. Every session gets its own app, workspace and index
// connection; they share the library on disk.
func NewProgramHandler(cfg config.Config) bts.ProgramHandler {
	return func(sess ssh.Session) *tea.Program {
		_, p := newSessionProgram(cfg, sess)
		return p
	}
}

// newSessionProgram builds one session's app and program. The app keeps
// the program reference so the library watcher can push refreshes and
// errors into the session from outside the update loop.
func newSessionProgram(cfg config.Config, sess ssh.Session) (*app.App, *tea.Program) {
	a := app.New(cfg)

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	opts = append(opts, bts.MakeOptions(sess)...)

	p := tea.NewProgram(a, opts...)
	a.SetProgram(p)
	return a, p
}
