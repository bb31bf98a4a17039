package term

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/vt"
)

type screen struct {
	term       *vt.SafeEmulator
	done       chan struct{}
	showCursor bool
}

// newScreen creates a VT emulator and starts a goroutine that drains
// terminal responses (DA1, DECRQM, etc.) back to the PTY. Without this,
// the emulator's internal io.Pipe blocks on Write when the shell or a
// program inside it sends queries.
func newScreen(width, height int, ptyFile *os.File) *screen {
	term := vt.NewSafeEmulator(width, height)
	done := make(chan struct{})

	go func() {
		buf := make([]byte, 1024)
		for {
			n, err := term.Read(buf)
			if n > 0 {
				ptyFile.Write(buf[:n])
			}
			if err != nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return &screen{term: term, done: done, showCursor: true}
}

func (s *screen) write(p []byte) (int, error) {
	return s.term.Write(p)
}

func (s *screen) resize(width, height int) {
	s.term.Resize(width, height)
}

func (s *screen) render() string {
	rendered := s.term.Render()
	// Render() uses \r\n; Bubble Tea expects \n
	rendered = strings.ReplaceAll(rendered, "\r\n", "\n")
	if s.showCursor {
		pos := s.term.CursorPosition()
		return overlayCursor(rendered, pos.X, pos.Y)
	}
	return rendered
}

func (s *screen) setShowCursor(show bool) {
	s.showCursor = show
}

func (s *screen) close() error {
	close(s.done)
	return s.term.Close()
}

// overlayCursor inserts a reverse-video block at the cursor position.
func overlayCursor(out string, cx, cy int) string {
	lines := strings.Split(out, "\n")
	if cy < 0 || cy >= len(lines) {
		return out
	}
	lines[cy] = insertCursor(lines[cy], cx)
	return strings.Join(lines, "\n")
}

// insertCursor adds reverse video at visual column col, skipping ANSI escapes.
func insertCursor(line string, col int) string {
	runes := []rune(line)
	vcol := 0
	i := 0

	for i < len(runes) {
		// Skip ANSI escape sequences
		if runes[i] == 0x1b {
			i++
			if i < len(runes) && runes[i] == '[' {
				// CSI sequence: skip until final byte (0x40-0x7E)
				i++
				for i < len(runes) && runes[i] >= 0x20 && runes[i] < 0x40 {
					i++
				}
				if i < len(runes) {
					i++ // skip final byte
				}
			} else if i < len(runes) {
				i++ // simple ESC + one char
			}
			continue
		}

		if vcol == col {
			ch := string(runes[i])
			before := string(runes[:i])
			after := string(runes[i+1:])
			return before + "\x1b[7m" + ch + "\x1b[27m" + after
		}

		vcol++
		i++
	}

	// Cursor past end of line: append a reversed space
	pad := strings.Repeat(" ", col-vcol)
	return line + pad + "\x1b[7m \x1b[27m"
}

var _ io.Reader = (*vt.SafeEmulator)(nil)
