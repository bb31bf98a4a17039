// Package ssh serves the workspace over SSH via Wish, one independent
// app instance per session.
package ssh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/pfassina/loom/internal/config"
)

// Server wraps a Wish SSH server.
type Server struct {
	server *ssh.Server
	cfg    config.Config
}

// New creates a new SSH server. The host key lives alongside the index in
// the library's .loom directory.
func New(cfg config.Config) (*Server, error) {
	hostKeyPath := filepath.Join(cfg.LibraryPath, ".loom", "ssh_host_key")
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0755); err != nil {
		return nil, fmt.Errorf("create host key dir: %w", err)
	}

	// The program-handler form hands each session's program back to the
	// app, so watcher refreshes reach remote clients like local ones.
	s, err := wish.NewServer(
		wish.WithAddress(cfg.Listen),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			logging.Middleware(),
			activeterm.Middleware(),
			bts.MiddlewareWithProgramHandler(NewProgramHandler(cfg), termenv.ANSI256),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, cfg: cfg}, nil
}

// ListenAndServe starts the SSH server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
