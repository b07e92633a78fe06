package heap

// Block is the allocated unit (header, object). Object carries whatever
// payload a runtime value needs — including, for flexible-array objects
// (strings, arrays, objects, bigints), a Go slice standing in for the
// original's "header.len() items follow the header" layout: Go slices
// already carry their own length and the GC already tracks the backing
// array, so there is no separate flexible-array header type to reproduce.
type Block[T any] struct {
	header  Header
	arena   *Arena
	size    int64
	deleted bool
	Object  T
}

// AddRef increments the block's refcount and returns the previous value.
func (b *Block[T]) AddRef() int64 {
	return b.header.RefUpdate(AddRef)
}

// Read returns the current refcount without modifying it.
func (b *Block[T]) Read() int64 {
	return b.header.RefUpdate(Read)
}

// Release decrements the block's refcount. When the count was already at
// its minimum (old value 0, meaning this was the last outstanding
// reference) it runs the object's destructor and, for arena-backed blocks,
// returns the block's accounted bytes to the arena. Calling Release again
// on an already-deleted block panics: that is a use-after-free the
// reference wrappers in pkg/ref are responsible for preventing.
func (b *Block[T]) Release() int64 {
	old := b.header.RefUpdate(Release)
	if old == 0 || b.deleted {
		b.delete()
	}
	return old
}

func (b *Block[T]) delete() {
	if b.deleted {
		panic("heap: double free of block")
	}
	b.deleted = true
	var zero T
	b.Object = zero
	if b.arena != nil {
		b.arena.release(b.size)
	}
}

// NewGlobalBlock allocates a block whose refcount is the relaxed-atomic
// Global backend: header initialised to 0, so the first MutRef owns the
// block implicitly and conversion to Ref performs the first AddRef.
func NewGlobalBlock[T any](obj T) *Block[T] {
	return &Block[T]{header: &GlobalHeader{}, Object: obj}
}

// Arena is a bump-allocation-shaped backend: it tracks how many blocks
// allocated through it are still live and how much accounted payload size
// they hold. A Go arena does not itself own the memory (the GC does); it
// exists to reproduce the original's scoping discipline and its testable
// "arena live-block count decrements on last release" property.
type Arena struct {
	liveBlocks int64
	liveBytes  int64
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// LiveBlocks returns the number of blocks allocated through this arena that
// have not yet been fully released.
func (a *Arena) LiveBlocks() int64 {
	return a.liveBlocks
}

// LiveBytes returns the cumulative accounted size of live blocks.
func (a *Arena) LiveBytes() int64 {
	return a.liveBytes
}

func (a *Arena) release(size int64) {
	a.liveBlocks--
	a.liveBytes -= size
}

// NewBlock allocates a block backed by this arena: refcount storage is a
// plain non-atomic counter (arenas are never shared across threads), and
// the arena's live-block/byte accounting is updated.
func NewBlock[T any](a *Arena, obj T, size int64) *Block[T] {
	a.liveBlocks++
	a.liveBytes += size
	return &Block[T]{header: &LocalHeader{}, arena: a, size: size, Object: obj}
}
