package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	LibraryPath   string
	Listen        string
	Serve         bool
	Theme         string
	Shell         string
	LeaderKey     string
	LeaderTimeout int // milliseconds
	ShowStatus    bool

	// Keybinds maps action names to the leader-table key that triggers
	// them. See DefaultKeybinds for the action vocabulary.
	Keybinds map[string]string
}

func Default() Config {
	home, _ := os.UserHomeDir()
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return Config{
		LibraryPath:   filepath.Join(home, "library"),
		Listen:        ":2222",
		Serve:         false,
		Theme:         "default",
		Shell:         shell,
		LeaderKey:     "ctrl+b",
		LeaderTimeout: 1500,
		ShowStatus:    true,
		Keybinds:      DefaultKeybinds(),
	}
}
