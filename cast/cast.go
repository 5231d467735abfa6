package cast

import (
	"sync"
	"unsafe"

	"github.com/wippyai/opaque"
)

type conversion struct {
	adjust func(unsafe.Pointer) unsafe.Pointer
	from   opaque.TypeToken
}

var (
	mu          sync.RWMutex
	conversions = make(map[opaque.TypeToken][]conversion)
)

// Declare registers R as a candidate concrete type that may validly be
// viewed as U. Candidates are tried in declaration order, first match
// wins. The adjust function performs the concrete-to-target pointer
// adjustment; for an embedded field this is simply its address:
//
//	cast.Declare(func(c *FlacCodec) *Codec { return &c.Codec })
//
// Once a target has any declared candidate, only declared candidates
// succeed for it; declare the target type itself if exact matches
// should still resolve.
func Declare[U any, R any](adjust func(*R) *U) {
	target := opaque.TokenOf[U]()
	c := conversion{
		from: opaque.TokenOf[R](),
		adjust: func(p unsafe.Pointer) unsafe.Pointer {
			return unsafe.Pointer(adjust((*R)(p)))
		},
	}

	mu.Lock()
	defer mu.Unlock()
	conversions[target] = append(conversions[target], c)
}

// To resolves the untyped pointer p, whose recorded type is actual,
// into a pointer to the target type. It walks the declared candidate
// list for target left to right; with no declared list the default is
// an exact identity match. It never reinterprets unconditionally.
func To(target opaque.TypeToken, p unsafe.Pointer, actual opaque.TypeToken) (unsafe.Pointer, bool) {
	mu.RLock()
	list := conversions[target]
	mu.RUnlock()

	if len(list) > 0 {
		for _, c := range list {
			if c.from == actual {
				return c.adjust(p), true
			}
		}
		return nil, false
	}
	if target == actual {
		return p, true
	}
	return nil, false
}

// As recovers a typed pointer to U from an opaque provider. When the
// provider carries its own cast capability that capability is used;
// otherwise the provider's recorded token is resolved directly against
// the table.
func As[U any](p opaque.Provider) (*U, bool) {
	if p == nil {
		return nil, false
	}
	target := opaque.TokenOf[U]()

	if c, ok := p.(opaque.Castable); ok {
		vp, ok := c.CastTo(target)
		if !ok {
			return nil, false
		}
		return (*U)(vp), true
	}

	vp, ok := To(target, p.VoidPtr(), p.TypeToken())
	if !ok {
		return nil, false
	}
	return (*U)(vp), true
}

// Can reports whether the provider's recorded type can be viewed as U.
func Can[U any](p opaque.Provider) bool {
	_, ok := As[U](p)
	return ok
}

// Reset clears all declared conversions. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	conversions = make(map[opaque.TypeToken][]conversion)
}
