// Package ref implements the two typed reference wrappers over a
// heap.Block: MutRef (unique ownership) and Ref (shared ownership), plus
// the fallible conversion between them.
package ref

import "github.com/functionalscript/nanvm-sub000/pkg/heap"

// MutRef is the unique owner of a block: its refcount is 0 (this wrapper
// is the sole claim). Obtained directly from an allocator or by demoting a
// Ref whose count has dropped to exactly one outstanding reference.
type MutRef[T any] struct {
	block *Block[T]
}

// Ref is a shared owner of a block: its refcount is >= 1 and this wrapper
// holds one of those references.
type Ref[T any] struct {
	block *Block[T]
}

// Block is the heap.Block specialisation this package operates on; kept
// as a named type so ref and value can share it without a generic-method
// interface (Go does not support generic methods on non-generic types).
type Block[T any] = heap.Block[T]

// NewMutRef wraps a freshly allocated block as its unique owner. The
// caller must pass a block whose refcount is still at its allocator
// default (0 for Global, 0 for Arena headers).
func NewMutRef[T any](b *Block[T]) MutRef[T] {
	return MutRef[T]{block: b}
}

// Get returns the wrapped object for reading or mutation. It does not
// check whether the MutRef has already been released.
func (m MutRef[T]) Get() *T {
	return &m.block.Object
}

// Release drops unique ownership, running the object's destructor and
// (for arena blocks) returning its accounted bytes. After Release, m must
// not be used again.
func (m MutRef[T]) Release() {
	m.block.Release()
}

// ToRef converts unique ownership into the first shared reference. This
// is a bookkeeping no-op on the refcount from the caller's perspective —
// internally it performs the first AddRef, taking the block from
// "0 = sole MutRef owner" to "1 = one Ref holder".
func (m MutRef[T]) ToRef() Ref[T] {
	m.block.AddRef()
	return Ref[T]{block: m.block}
}

// Clone adds one more shared reference to the same block.
func (r Ref[T]) Clone() Ref[T] {
	r.block.AddRef()
	return Ref[T]{block: r.block}
}

// Get returns the wrapped object for reading. Shared references never
// grant mutable access — only a MutRef (or a Ref successfully demoted via
// TryToMutRef) may mutate.
func (r Ref[T]) Get() *T {
	return &r.block.Object
}

// Release drops one shared reference. If this was the last one
// outstanding, the object is destroyed.
func (r Ref[T]) Release() {
	// A sole Ref holds the count at 1 (ToRef's AddRef); dropping it takes
	// the block back to 0 and then releases that last claim.
	if r.block.Release() == 1 {
		r.block.Release()
	}
}

// TryToMutRef attempts to demote a shared reference back into unique
// ownership. It succeeds iff the block's refcount is exactly 1 (this Ref
// is the sole remaining holder), consuming r and decrementing the count to
// 0 to hand back a MutRef. On failure it returns r unchanged so the caller
// keeps its shared reference.
func (r Ref[T]) TryToMutRef() (MutRef[T], bool) {
	if r.block.Read() != 1 {
		return MutRef[T]{}, false
	}
	r.block.Release()
	return MutRef[T]{block: r.block}, true
}

// Block exposes the underlying heap block, for components (value.Any) that
// need to dispatch on raw refcount or compare reference identity.
func (r Ref[T]) Block() *Block[T] { return r.block }

// Block exposes the underlying heap block for a MutRef.
func (m MutRef[T]) Block() *Block[T] { return m.block }
