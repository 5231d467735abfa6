package registry

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/opaque"
)

// Finalizer destroys the object an ownership block owns. It is bound
// to the original concrete type at registration time, so destruction
// stays correct even though everything downstream manipulates the
// object through an untyped pointer.
type Finalizer func()

// Entry describes a new ownership block to the registry. It is
// produced by the factory passed to Get when no block exists yet for
// an address.
type Entry struct {
	Token    opaque.TypeToken
	Finalize Finalizer
}

type block struct {
	token    opaque.TypeToken
	finalize Finalizer
	holders  int
}

// Registry maps object addresses to shared ownership blocks. At most
// one block exists per address at any time; repeated or concurrent
// claims on the same address join the existing block.
type Registry struct {
	blocks    map[unsafe.Pointer]*block
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		blocks: make(map[unsafe.Pointer]*block),
	}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, created on first use.
// There is no explicit teardown; it lives until process end.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Get joins the ownership block for addr, invoking factory to build
// one when none exists. The registry never fails itself; any error is
// the factory's, forwarded unchanged.
func (r *Registry) Get(addr unsafe.Pointer, factory func() (Entry, error)) error {
	r.mu.Lock()
	if b, ok := r.blocks[addr]; ok {
		b.holders++
		token, holders := b.token, b.holders
		r.mu.Unlock()

		Logger().Debug("ownership block joined",
			zap.String("type", token.Name()),
			zap.Uintptr("addr", uintptr(addr)),
			zap.Int("holders", holders))
		r.notify(Event{Type: EventJoined, Addr: addr, Token: token, Holders: holders})
		return nil
	}

	e, err := factory()
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.blocks[addr] = &block{token: e.Token, finalize: e.Finalize, holders: 1}
	r.mu.Unlock()

	Logger().Debug("ownership block created",
		zap.String("type", e.Token.Name()),
		zap.Uintptr("addr", uintptr(addr)))
	r.notify(Event{Type: EventCreated, Addr: addr, Token: e.Token, Holders: 1})
	return nil
}

// Release drops one reference to the block for addr. When the last
// holder releases, the entry is erased and the finalizer runs inline
// on the calling thread before Release returns. Releasing an address
// with no block is a no-op.
func (r *Registry) Release(addr unsafe.Pointer) {
	r.mu.Lock()
	b, ok := r.blocks[addr]
	if !ok {
		r.mu.Unlock()
		return
	}
	b.holders--
	if b.holders > 0 {
		token, holders := b.token, b.holders
		r.mu.Unlock()
		r.notify(Event{Type: EventReleased, Addr: addr, Token: token, Holders: holders})
		return
	}
	delete(r.blocks, addr)
	r.mu.Unlock()

	// Finalization happens outside the map lock; the lock only covers
	// map mutation.
	if b.finalize != nil {
		b.finalize()
	}
	Logger().Debug("ownership block destroyed",
		zap.String("type", b.token.Name()),
		zap.Uintptr("addr", uintptr(addr)))
	r.notify(Event{Type: EventDestroyed, Addr: addr, Token: b.token})
}

// Count returns the externally reported share count for addr: the
// number of holders beyond the first, with the registry's own
// bookkeeping entry excluded. A sole holder reports 0; an unknown
// address reports 0.
func (r *Registry) Count(addr unsafe.Pointer) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blocks[addr]
	if !ok {
		return 0
	}
	return b.holders - 1
}

// Token returns the recorded type token for addr.
func (r *Registry) Token(addr unsafe.Pointer) (opaque.TypeToken, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blocks[addr]
	if !ok {
		return opaque.TypeToken{}, false
	}
	return b.token, true
}

// Contains reports whether a live block exists for addr.
func (r *Registry) Contains(addr unsafe.Pointer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.blocks[addr]
	return ok
}

// Len returns the number of live ownership blocks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blocks)
}

// Subscribe adds an observer for block lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnBlockEvent(e)
	}
}
