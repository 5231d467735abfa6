package export

import (
	"errors"
	"sync"

	"github.com/wippyai/opaque"
)

var ErrClosed = errors.New("export table closed")

// ID is an opaque integer identifier for an exported provider.
// ID 0 is reserved and always invalid.
type ID uint32

type entry struct {
	provider opaque.Provider
	valid    bool
}

// Table assigns integer ids to opaque providers so they can cross
// boundaries that cannot carry Go pointers. Slots are reused through a
// free list.
type Table struct {
	entries  []entry
	freeList []ID
	mu       sync.RWMutex
	closed   bool
}

// NewTable creates an empty export table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]ID, 0, 16),
	}
}

// Put stores a provider and returns its id. Nil providers are
// rejected; after Close every Put fails with ErrClosed.
func (t *Table) Put(p opaque.Provider) (ID, error) {
	if p == nil {
		return 0, errors.New("nil provider")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}

	e := entry{provider: p, valid: true}

	if len(t.freeList) > 0 {
		id := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[id-1] = e
		return id, nil
	}

	t.entries = append(t.entries, e)
	return ID(len(t.entries)), nil
}

// Get retrieves a provider by id.
func (t *Table) Get(id ID) (opaque.Provider, bool) {
	if id == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := id - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.provider, true
}

// Remove unregisters id and returns the provider without releasing
// its reference; the caller takes over ownership.
func (t *Table) Remove(id ID) (opaque.Provider, bool) {
	if id == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := id - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}

	p := e.provider
	e.valid = false
	e.provider = nil
	t.freeList = append(t.freeList, id)

	return p, true
}

// Drop unregisters id and releases the provider's reference when it
// owns one.
func (t *Table) Drop(id ID) bool {
	p, ok := t.Remove(id)
	if !ok {
		return false
	}
	if r, ok := p.(opaque.Releaser); ok {
		r.Release()
	}
	return true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all live entries.
func (t *Table) Each(fn func(ID, opaque.Provider) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(ID(i+1), e.provider) {
				break
			}
		}
	}
}

// Close releases every surviving provider and stops accepting
// operations.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	for i := range t.entries {
		if t.entries[i].valid {
			if r, ok := t.entries[i].provider.(opaque.Releaser); ok {
				r.Release()
			}
			t.entries[i].valid = false
			t.entries[i].provider = nil
		}
	}

	t.entries = nil
	t.freeList = nil
	return nil
}
