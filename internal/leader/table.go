package leader

import "sync"

// Table is the mutable command table a Dispatcher reads through. The
// dispatcher keeps one *Table for its whole lifetime; rebinding commands
// replaces the table's contents in place, so nothing holding the pointer
// ever needs to resubscribe.
type Table struct {
	mu       sync.Mutex
	bindings map[string]Binding
	order    []string
}

// NewTable creates an empty command table.
func NewTable() *Table {
	return &Table{bindings: make(map[string]Binding)}
}

// Bind registers run under key. Rebinding an existing key replaces the
// command but keeps its position in the help listing.
func (t *Table) Bind(key, label string, run func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.bindings[key]; !exists {
		t.order = append(t.order, key)
	}
	t.bindings[key] = Binding{Key: key, Label: label, Run: run}
}

// Replace swaps the whole table for bindings, in the given order.
func (t *Table) Replace(bindings []Binding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings = make(map[string]Binding, len(bindings))
	t.order = t.order[:0]
	for _, b := range bindings {
		if _, exists := t.bindings[b.Key]; !exists {
			t.order = append(t.order, b.Key)
		}
		t.bindings[b.Key] = b
	}
}

// Lookup returns the binding for key.
func (t *Table) Lookup(key string) (Binding, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.bindings[key]
	return b, ok
}

// Bindings returns all bindings in registration order, for the help overlay.
func (t *Table) Bindings() []Binding {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Binding, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.bindings[k])
	}
	return out
}
