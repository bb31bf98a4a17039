package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/loom/internal/app"
	"github.com/pfassina/loom/internal/config"
	"github.com/pfassina/loom/internal/ssh"
)

func main() {
	cfg := config.Default()
	configExisted, err := config.LoadFile(&cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	library := flag.String("library", cfg.LibraryPath, "path to the content library")
	serve := flag.Bool("serve", cfg.Serve, "run in SSH server mode")
	listen := flag.String("listen", cfg.Listen, "listen address for --serve (e.g. :2222)")
	themeName := flag.String("theme", cfg.Theme, "color theme name")
	shell := flag.String("shell", cfg.Shell, "shell for terminal panes")
	leaderKey := flag.String("leader-key", cfg.LeaderKey, "leader chord (default: ctrl+b)")
	leaderTimeout := flag.Int("leader-timeout", cfg.LeaderTimeout, "leader arm window in ms")

	flag.Parse()

	// Normalize the library path: expand ~ and make absolute so shells
	// spawned in panes and the watcher agree on paths.
	cfg.LibraryPath = config.ExpandHome(*library)
	if abs, err := filepath.Abs(cfg.LibraryPath); err == nil {
		cfg.LibraryPath = abs
	}
	cfg.Serve = *serve
	cfg.Listen = *listen
	cfg.Theme = *themeName
	cfg.Shell = *shell
	cfg.LeaderKey = *leaderKey
	cfg.LeaderTimeout = *leaderTimeout

	// First-run: if no config file exists and the library wasn't explicitly
	// provided, prompt for a library path and persist it.
	if !configExisted && !argHas("--library") {
		res, err := config.RunSetup()
		if err != nil {
			fmt.Fprintln(os.Stderr, "setup failed:", err)
			os.Exit(1)
		}
		if res.Cancelled {
			os.Exit(0)
		}
		cfg.LibraryPath = res.LibraryPath
		if abs, err := filepath.Abs(cfg.LibraryPath); err == nil {
			cfg.LibraryPath = abs
		}
	}

	if err := config.ScaffoldLibrary(cfg.LibraryPath); err != nil {
		fmt.Fprintln(os.Stderr, "error creating library dirs:", err)
		os.Exit(1)
	}

	if cfg.Serve {
		runServe(cfg)
		return
	}
	runLocal(cfg)
}

func runLocal(cfg config.Config) {
	a := app.New(cfg)
	p := tea.NewProgram(a, tea.WithAltScreen())
	a.SetProgram(p)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func runServe(cfg config.Config) {
	s, err := ssh.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		if err := s.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing server: %v\n", err)
		}
	}()

	if err := s.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func argHas(name string) bool {
	for _, a := range os.Args[1:] {
		if a == name || a == "-"+name[2:] {
			return true
		}
	}
	return false
}
