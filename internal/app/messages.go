package app

import tea "github.com/charmbracelet/bubbletea"

// fatalErrorMsg is sent to the Bubble Tea program when a background subsystem
// encounters an unrecoverable error. The app should quit and show the error.
type fatalErrorMsg struct{ err error }

func fatalCmd(err error) tea.Cmd {
	return tea.Batch(tea.Printf("fatal: %v\n", err), tea.Quit)
}

// leaderExpireMsg fires when the arm window for generation gen elapses.
type leaderExpireMsg struct{ gen int }

// leaderSettleMsg fires when the pending-key indicator for generation gen
// should clear.
type leaderSettleMsg struct{ gen int }

// indexReadyMsg signals the initial library scan finished.
type indexReadyMsg struct{ err error }

// libraryChangedMsg is sent by the file watcher after a document changes on
// disk and has been re-indexed.
type libraryChangedMsg struct{}
