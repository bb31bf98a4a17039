// Package leader implements the two-stage leader-key input system: a fixed
// chord arms the dispatcher, the next key selects a command from a table.
// The package is framework-free; the TUI adapter feeds it key strings and
// schedules its timeouts.
package leader

import (
	"strings"
	"time"
)

// Default timings. The arm window is generous enough to read the help
// overlay; the settle delay exists only so a pending-key indicator gets one
// render before clearing.
const (
	DefaultArmTimeout  = 1500 * time.Millisecond
	DefaultSettleDelay = 50 * time.Millisecond
)

// State is the dispatcher's mode.
type State int

const (
	// Idle passes all keys through untouched.
	Idle State = iota
	// Armed consumes the next key as a command selector.
	Armed
)

// Binding is one entry in the command table.
type Binding struct {
	Key   string
	Label string
	Run   func()
}

// Dispatcher is the modal state machine between raw key events and layout
// commands. A single Dispatcher lives for the whole workspace session; the
// key subscription that feeds it is established once, and command identity
// changes happen inside the Table, never by re-subscribing.
//
// Timeouts are cooperative: Arm and HandleKey return a generation number the
// caller echoes back via Expire/ClearPending, so a stale timer from an
// earlier arming can never cancel a fresh one.
type Dispatcher struct {
	table *Table
	state State
	gen   int

	// pending holds the last dispatched key until the settle delay clears
	// it; purely a display affordance for the status bar.
	pending string

	ArmTimeout  time.Duration
	SettleDelay time.Duration
}

// New creates a dispatcher reading commands from table.
func New(table *Table) *Dispatcher {
	return &Dispatcher{
		table:       table,
		ArmTimeout:  DefaultArmTimeout,
		SettleDelay: DefaultSettleDelay,
	}
}

// State returns the current mode.
func (d *Dispatcher) State() State { return d.state }

// Armed reports whether the next key will be consumed as a command.
func (d *Dispatcher) Armed() bool { return d.state == Armed }

// Pending returns the key dispatched within the last settle window, or "".
func (d *Dispatcher) Pending() string { return d.pending }

// Table returns the command table the dispatcher reads through.
func (d *Dispatcher) Table() *Table { return d.table }

// Arm transitions Idle → Armed and returns the timeout generation the
// caller should schedule ArmTimeout with. Arming while already armed
// restarts the window.
func (d *Dispatcher) Arm() int {
	d.state = Armed
	d.gen++
	d.pending = ""
	return d.gen
}

// Cancel drops back to Idle immediately (Escape).
func (d *Dispatcher) Cancel() {
	d.state = Idle
	d.pending = ""
}

// Expire handles an arm-timeout firing. Only the generation issued by the
// matching Arm call disarms; anything else is a stale timer and ignored.
func (d *Dispatcher) Expire(gen int) bool {
	if d.state != Armed || gen != d.gen {
		return false
	}
	d.state = Idle
	return true
}

// HandleKey processes a key while armed. It returns to Idle before
// returning, so no subsequent keystroke can be swallowed, and reports the
// matched binding (run it, then schedule SettleDelay with gen to clear the
// pending indicator via ClearPending). Keys arriving while Idle are not
// consumed.
func (d *Dispatcher) HandleKey(key string) (bind Binding, gen int, consumed bool) {
	if d.state != Armed {
		return Binding{}, 0, false
	}

	key = Normalize(key)
	if key == "esc" {
		d.Cancel()
		return Binding{}, 0, true
	}

	d.state = Idle
	d.gen++
	d.pending = key

	b, ok := d.table.Lookup(key)
	if !ok {
		// Unrecognized command key: consumed and silently ignored.
		return Binding{}, d.gen, true
	}
	return b, d.gen, true
}

// ClearPending removes the pending-key indicator once the settle delay for
// its dispatch elapses.
func (d *Dispatcher) ClearPending(gen int) {
	if gen == d.gen {
		d.pending = ""
	}
}

// Normalize canonicalizes a key event string. Shifted letters become their
// uppercase rune, which is how the table distinguishes move commands from
// focus commands (H moves left, h focuses left).
func Normalize(key string) string {
	if k, ok := strings.CutPrefix(key, "shift+"); ok && len(k) == 1 {
		return strings.ToUpper(k)
	}
	return key
}
