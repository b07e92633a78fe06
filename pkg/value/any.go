package value

import (
	"sort"

	"github.com/functionalscript/nanvm-sub000/pkg/bignum"
	"github.com/functionalscript/nanvm-sub000/pkg/heap"
	"github.com/functionalscript/nanvm-sub000/pkg/ref"
)

// JSString is the heap payload of a string value: UTF-16 code units, as
// read off the wire. Surrogate-pair decoding is out of scope (§ Non-goals).
type JSString struct {
	Units []uint16
}

// ObjectEntry is one key/value pair of a JSObject.
type ObjectEntry struct {
	Key   string
	Value Any
}

// JSObject is the heap payload of an object value. Entries are kept sorted
// lexicographically by key: the original builds objects into a BTreeMap,
// so iteration and serialization order is key order, not insertion order.
type JSObject struct {
	Entries []ObjectEntry
}

// JSArray is the heap payload of an array value.
type JSArray struct {
	Items []Any
}

// Allocator selects which heap.Block backend (§4.C) a New*In call builds
// its reference-kind payload through: the Global backend (atomic
// refcount) when arena is nil, or the given Arena (plain refcount,
// single-owner scope) otherwise. GlobalAllocator is the zero value, so
// every NewString/NewObject/NewArray/NewBigInt call already uses it.
type Allocator struct {
	arena *heap.Arena
}

// GlobalAllocator is the default Allocator.
var GlobalAllocator = Allocator{}

// NewArenaAllocator builds an Allocator backed by a.
func NewArenaAllocator(a *heap.Arena) Allocator {
	return Allocator{arena: a}
}

// allocBlock is a free function rather than a method on Allocator because
// Go does not support generic methods on non-generic types (see
// pkg/ref.Block's own note on the same constraint).
func allocBlock[T any](al Allocator, obj T, size int64) *heap.Block[T] {
	if al.arena == nil {
		return heap.NewGlobalBlock(obj)
	}
	return heap.NewBlock(al.arena, obj, size)
}

// Any is the Go-safe tagged union §9 "Polymorphism" licenses in place of a
// NaN-boxed 64-bit word: a Kind discriminator plus one field per payload
// shape, only one of which is meaningful for any given value. Reference
// payloads are refcounted ref.Ref handles; Clone/Release/Equal dispatch on
// Kind exactly as the original's Any::clone/drop/operator== dispatch on the
// packed word's tag bits.
type Any struct {
	kind Kind
	num  float64
	b    bool
	str  ref.Ref[JSString]
	obj  ref.Ref[JSObject]
	arr  ref.Ref[JSArray]
	big  ref.Ref[bignum.BigInt]
}

// NewNumber wraps an f64.
func NewNumber(n float64) Any { return Any{kind: KindNumber, num: n} }

// NewBool wraps a boolean.
func NewBool(b bool) Any { return Any{kind: KindBool, b: b} }

// NewNull returns the null value.
func NewNull() Any { return Any{kind: KindNull} }

// NewString wraps a freshly allocated, uniquely owned string on the
// Global allocator.
func NewString(s JSString) Any { return NewStringIn(GlobalAllocator, s) }

// NewStringIn is NewString through the given Allocator (§9 "Config
// objects": arena-vs-global selection).
func NewStringIn(al Allocator, s JSString) Any {
	block := allocBlock(al, s, int64(len(s.Units))*2)
	return Any{kind: KindString, str: ref.NewMutRef(block).ToRef()}
}

// NewObject wraps a freshly allocated, uniquely owned object on the
// Global allocator.
func NewObject(o JSObject) Any { return NewObjectIn(GlobalAllocator, o) }

// NewObjectIn is NewObject through the given Allocator.
func NewObjectIn(al Allocator, o JSObject) Any {
	sort.SliceStable(o.Entries, func(i, j int) bool { return o.Entries[i].Key < o.Entries[j].Key })
	block := allocBlock(al, o, int64(len(o.Entries))*32)
	return Any{kind: KindObject, obj: ref.NewMutRef(block).ToRef()}
}

// NewArray wraps a freshly allocated, uniquely owned array on the Global
// allocator.
func NewArray(a JSArray) Any { return NewArrayIn(GlobalAllocator, a) }

// NewArrayIn is NewArray through the given Allocator.
func NewArrayIn(al Allocator, a JSArray) Any {
	block := allocBlock(al, a, int64(len(a.Items))*16)
	return Any{kind: KindArray, arr: ref.NewMutRef(block).ToRef()}
}

// NewBigInt wraps a freshly allocated, uniquely owned bigint on the
// Global allocator.
func NewBigInt(n bignum.BigInt) Any { return NewBigIntIn(GlobalAllocator, n) }

// NewBigIntIn is NewBigInt through the given Allocator.
func NewBigIntIn(al Allocator, n bignum.BigInt) Any {
	block := allocBlock(al, n, int64(len(n.Mag.Value))*8)
	return Any{kind: KindBigInt, big: ref.NewMutRef(block).ToRef()}
}

// GetType reports which kind is live in this value.
func (a Any) GetType() Kind { return a.kind }

// Clone returns a new handle to the same value, incrementing the refcount
// for reference kinds and copying by value for Number/Bool/Null.
func (a Any) Clone() Any {
	switch a.kind {
	case KindString:
		return Any{kind: a.kind, str: a.str.Clone()}
	case KindObject:
		return Any{kind: a.kind, obj: a.obj.Clone()}
	case KindArray:
		return Any{kind: a.kind, arr: a.arr.Clone()}
	case KindBigInt:
		return Any{kind: a.kind, big: a.big.Clone()}
	default:
		return a
	}
}

// Release drops this handle's claim on its payload, if any. Must be called
// exactly once per live Any that holds a reference kind; Number/Bool/Null
// are no-ops.
func (a Any) Release() {
	switch a.kind {
	case KindString:
		a.str.Release()
	case KindObject:
		a.obj.Release()
	case KindArray:
		a.arr.Release()
	case KindBigInt:
		a.big.Release()
	}
}

// Equal compares two values the way the original's raw-word equality does:
// reference-identity (same heap block) for ref kinds, value equality for
// Number/Bool/Null. Two independently built strings with identical content
// are NOT equal under this operator — structural comparison is a layer
// above, not part of Any itself.
func (a Any) Equal(other Any) bool {
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case KindNumber:
		return a.num == other.num
	case KindBool:
		return a.b == other.b
	case KindNull:
		return true
	case KindString:
		return a.str.Block() == other.str.Block()
	case KindObject:
		return a.obj.Block() == other.obj.Block()
	case KindArray:
		return a.arr.Block() == other.arr.Block()
	case KindBigInt:
		return a.big.Block() == other.big.Block()
	default:
		return false
	}
}

// TryNumber returns the wrapped f64 iff this value is a Number.
func (a Any) TryNumber() (float64, bool) {
	if a.kind != KindNumber {
		return 0, false
	}
	return a.num, true
}

// TryBool returns the wrapped bool iff this value is a Bool.
func (a Any) TryBool() (bool, bool) {
	if a.kind != KindBool {
		return false, false
	}
	return a.b, true
}

// TryString returns the shared string reference iff this value is a
// String, mirroring the original's fallible try_move::<JsString>().
func (a Any) TryString() (ref.Ref[JSString], bool) {
	if a.kind != KindString {
		return ref.Ref[JSString]{}, false
	}
	return a.str, true
}

// TryObject returns the shared object reference iff this value is an
// Object.
func (a Any) TryObject() (ref.Ref[JSObject], bool) {
	if a.kind != KindObject {
		return ref.Ref[JSObject]{}, false
	}
	return a.obj, true
}

// TryArray returns the shared array reference iff this value is an Array.
func (a Any) TryArray() (ref.Ref[JSArray], bool) {
	if a.kind != KindArray {
		return ref.Ref[JSArray]{}, false
	}
	return a.arr, true
}

// TryBigInt returns the shared bigint reference iff this value is a
// BigInt.
func (a Any) TryBigInt() (ref.Ref[bignum.BigInt], bool) {
	if a.kind != KindBigInt {
		return ref.Ref[bignum.BigInt]{}, false
	}
	return a.big, true
}
