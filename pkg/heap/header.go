// Package heap implements the reference-counted block layer: a header
// carrying a refcount (global, atomic; or arena-local, non-atomic) plus the
// object it owns, and two allocator backends (global, arena).
//
// Go's garbage collector already reclaims memory, so this package does not
// reproduce the original's raw pointer/layout arithmetic (block header
// immediately preceding the object in a single allocation) — doing so would
// require unsafe pointer tricks the GC cannot trace. Instead it reproduces
// the layer's *observable* contract exactly: AddRef/Release/Read deltas,
// last-reference-triggers-destruction dispatch, and arena live-block/byte
// bookkeeping. This is the same "ordinary tagged structure instead of the
// literal NaN-boxed layout, identical observable semantics" deviation the
// specification licenses for value.Any, applied one layer down.
package heap

import "sync/atomic"

// RefUpdate is the refcount delta applied by an operation.
type RefUpdate int64

const (
	Read    RefUpdate = 0
	AddRef  RefUpdate = 1
	Release RefUpdate = -1
)

// Header carries a block's refcount. RefUpdate returns the value the
// counter held *before* applying delta.
type Header interface {
	RefUpdate(delta RefUpdate) int64
}

// GlobalHeader is the refcount storage for blocks allocated through the
// Global backend: a relaxed atomic counter, since a value may be handed
// across threads even though it is only ever mutated by one at a time.
type GlobalHeader struct {
	counter atomic.Int64
}

func (h *GlobalHeader) RefUpdate(delta RefUpdate) int64 {
	return h.counter.Add(int64(delta)) - int64(delta)
}

// LocalHeader is the refcount storage for blocks allocated through an
// Arena: a plain counter, non-atomic, because arenas are thread-local and
// never shared.
type LocalHeader struct {
	counter int64
}

func (h *LocalHeader) RefUpdate(delta RefUpdate) int64 {
	old := h.counter
	h.counter += int64(delta)
	return old
}
