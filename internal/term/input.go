package term

import tea "github.com/charmbracelet/bubbletea"

// Escape sequences for keys with a fixed wire form.
var keySequences = map[tea.KeyType][]byte{
	tea.KeyEnter:     {'\r'},
	tea.KeyBackspace: {0x7f},
	tea.KeyTab:       {'\t'},
	tea.KeyEsc:       {0x1b},
	tea.KeySpace:     {' '},

	tea.KeyUp:    []byte("\x1b[A"),
	tea.KeyDown:  []byte("\x1b[B"),
	tea.KeyRight: []byte("\x1b[C"),
	tea.KeyLeft:  []byte("\x1b[D"),

	tea.KeyHome:   []byte("\x1b[H"),
	tea.KeyEnd:    []byte("\x1b[F"),
	tea.KeyPgUp:   []byte("\x1b[5~"),
	tea.KeyPgDown: []byte("\x1b[6~"),
	tea.KeyDelete: []byte("\x1b[3~"),
	tea.KeyInsert: []byte("\x1b[2~"),

	tea.KeyShiftTab:   []byte("\x1b[Z"),
	tea.KeyCtrlUp:     []byte("\x1b[1;5A"),
	tea.KeyCtrlDown:   []byte("\x1b[1;5B"),
	tea.KeyCtrlRight:  []byte("\x1b[1;5C"),
	tea.KeyCtrlLeft:   []byte("\x1b[1;5D"),
	tea.KeyShiftUp:    []byte("\x1b[1;2A"),
	tea.KeyShiftDown:  []byte("\x1b[1;2B"),
	tea.KeyShiftRight: []byte("\x1b[1;2C"),
	tea.KeyShiftLeft:  []byte("\x1b[1;2D"),

	tea.KeyF1:  []byte("\x1bOP"),
	tea.KeyF2:  []byte("\x1bOQ"),
	tea.KeyF3:  []byte("\x1bOR"),
	tea.KeyF4:  []byte("\x1bOS"),
	tea.KeyF5:  []byte("\x1b[15~"),
	tea.KeyF6:  []byte("\x1b[17~"),
	tea.KeyF7:  []byte("\x1b[18~"),
	tea.KeyF8:  []byte("\x1b[19~"),
	tea.KeyF9:  []byte("\x1b[20~"),
	tea.KeyF10: []byte("\x1b[21~"),
	tea.KeyF11: []byte("\x1b[23~"),
	tea.KeyF12: []byte("\x1b[24~"),
}

// keyMsgToBytes converts a Bubble Tea key message back to the raw escape
// sequence a PTY expects.
func keyMsgToBytes(msg tea.KeyMsg) []byte {
	// Alt-modified keys get an ESC prefix.
	if msg.Alt {
		inner := keyMsgToBytes(tea.KeyMsg{Type: msg.Type, Runes: msg.Runes})
		if inner == nil {
			return nil
		}
		return append([]byte{0x1b}, inner...)
	}

	if msg.Type == tea.KeyRunes {
		return []byte(string(msg.Runes))
	}
	if seq, ok := keySequences[msg.Type]; ok {
		return seq
	}

	// Ctrl+letter maps straight to C0 control codes.
	if t := int(msg.Type); t >= 0 && t <= 31 {
		return []byte{byte(t)}
	}
	return nil
}
