package config

// DefaultKeybinds maps leader-table action names to their default keys.
// The [keybinds] table in config.toml overrides entries by action name;
// single-key values only, uppercase letters mean shift is held.
func DefaultKeybinds() map[string]string {
	return map[string]string{
		"split-right":   "v",
		"split-down":    "s",
		"focus-left":    "h",
		"focus-down":    "j",
		"focus-up":      "k",
		"focus-right":   "l",
		"move-left":     "H",
		"move-down":     "J",
		"move-up":       "K",
		"move-right":    "L",
		"close-pane":    "x",
		"balance":       "b",
		"zoom":          "z",
		"find":          "f",
		"graph":         "G",
		"terminal":      "t",
		"new-note":      "n",
		"settings":      ",",
		"toggle-status": "S",
		"help":          "?",
		"quit":          "q",
	}
}

// KnownAction reports whether name is a rebindable action.
func KnownAction(name string) bool {
	_, ok := DefaultKeybinds()[name]
	return ok
}
