package handles

import "sync"

// Table maps raw handles to metadata under a single mutex. The zero value
// is ready to use.
type Table[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

// NewTable returns an empty Table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{entries: make(map[K]V)}
}

// Set records v for k, replacing any previous entry.
func (t *Table[K, V]) Set(k K, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.entries == nil {
		t.entries = make(map[K]V)
	}
	t.entries[k] = v
}

// Get returns the entry for k, or def when there is none.
func (t *Table[K, V]) Get(k K, def V) V {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.entries[k]; ok {
		return v
	}
	return def
}

// Lookup returns the entry for k and whether it exists.
func (t *Table[K, V]) Lookup(k K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.entries[k]
	return v, ok
}

// Delete removes k. Deleting a missing key is a no-op.
func (t *Table[K, V]) Delete(k K) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, k)
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Reset removes every entry.
func (t *Table[K, V]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.entries)
}
