package export

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wippyai/opaque"
	"github.com/wippyai/opaque/handle"
	"github.com/wippyai/opaque/registry"
)

type device struct {
	id    int
	drops *atomic.Int64
}

func (d *device) Drop() {
	if d.drops != nil {
		d.drops.Add(1)
	}
}

func TestTable_Basic(t *testing.T) {
	tab := NewTable()
	r := registry.New()

	h := handle.FromValueIn(r, device{id: 1})

	id, err := tab.Put(h)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}

	p, ok := tab.Get(id)
	if !ok {
		t.Fatal("Get failed")
	}
	if p.VoidPtr() != h.VoidPtr() {
		t.Fatal("Get returned a different provider")
	}

	got, ok := tab.Remove(id)
	if !ok {
		t.Fatal("Remove failed")
	}
	if got != opaque.Provider(h) {
		t.Fatal("Remove returned a different provider")
	}
	if tab.Len() != 0 {
		t.Fatalf("expected empty table, got %d entries", tab.Len())
	}
	if _, ok := tab.Get(id); ok {
		t.Fatal("removed id must not resolve")
	}

	h.Release()
}

func TestTable_InvalidIDs(t *testing.T) {
	tab := NewTable()

	if _, ok := tab.Get(0); ok {
		t.Fatal("id 0 must never resolve")
	}
	if _, ok := tab.Get(42); ok {
		t.Fatal("unknown id must not resolve")
	}
	if tab.Drop(7) {
		t.Fatal("dropping an unknown id must fail")
	}
	if _, err := tab.Put(nil); err == nil {
		t.Fatal("nil provider must be rejected")
	}
}

func TestTable_SlotReuse(t *testing.T) {
	tab := NewTable()
	r := registry.New()

	h1 := handle.FromValueIn(r, device{id: 1})
	h2 := handle.FromValueIn(r, device{id: 2})
	defer h2.Release()

	id1, _ := tab.Put(h1)
	tab.Drop(id1)

	id2, _ := tab.Put(h2)
	if id2 != id1 {
		t.Fatalf("expected freed slot %d to be reused, got %d", id1, id2)
	}
}

func TestTable_DropReleases(t *testing.T) {
	tab := NewTable()
	r := registry.New()
	var drops atomic.Int64

	h := handle.FromValueIn(r, device{drops: &drops})
	id, _ := tab.Put(h.NewHandle())

	if !tab.Drop(id) {
		t.Fatal("Drop failed")
	}
	if drops.Load() != 0 {
		t.Fatal("table's reference was not the last, object must survive")
	}

	h.Release()
	if drops.Load() != 1 {
		t.Fatalf("expected one destruction after final release, got %d", drops.Load())
	}
}

func TestTable_Close(t *testing.T) {
	tab := NewTable()
	r := registry.New()
	var drops atomic.Int64

	tab.Put(handle.FromValueIn(r, device{id: 1, drops: &drops}))
	tab.Put(handle.FromValueIn(r, device{id: 2, drops: &drops}))

	if err := tab.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if drops.Load() != 2 {
		t.Fatalf("Close must release survivors, got %d destructions", drops.Load())
	}
	if _, err := tab.Put(handle.FromValueIn(r, device{})); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
	if err := tab.Close(); err != nil {
		t.Fatalf("second Close must be a no-op, got %v", err)
	}
}

func TestTable_Each(t *testing.T) {
	tab := NewTable()
	r := registry.New()

	for i := 0; i < 3; i++ {
		tab.Put(handle.FromValueIn(r, device{id: i}))
	}

	seen := 0
	tab.Each(func(id ID, p opaque.Provider) bool {
		seen++
		return true
	})
	if seen != 3 {
		t.Fatalf("expected 3 entries, saw %d", seen)
	}

	seen = 0
	tab.Each(func(id ID, p opaque.Provider) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Fatalf("early stop should see 1 entry, saw %d", seen)
	}
}

func TestTable_Concurrent(t *testing.T) {
	tab := NewTable()
	r := registry.New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := handle.FromValueIn(r, device{id: i})
			id, err := tab.Put(h)
			if err != nil {
				t.Errorf("Put failed: %v", err)
				return
			}
			if _, ok := tab.Get(id); !ok {
				t.Errorf("Get failed for id %d", id)
				return
			}
			tab.Drop(id)
		}(i)
	}
	wg.Wait()

	if tab.Len() != 0 {
		t.Fatalf("expected empty table after stress, got %d", tab.Len())
	}
	if r.Len() != 0 {
		t.Fatalf("expected no live blocks after stress, got %d", r.Len())
	}
}
