package value

import (
	"testing"

	"github.com/functionalscript/nanvm-sub000/pkg/bignum"
	"github.com/functionalscript/nanvm-sub000/pkg/heap"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	v := NewNumber(3.5)
	require.Equal(t, KindNumber, v.GetType())
	n, ok := v.TryNumber()
	require.True(t, ok)
	require.Equal(t, 3.5, n)
	require.True(t, v.Equal(NewNumber(3.5)))
	require.False(t, v.Equal(NewNumber(3.6)))
	require.False(t, v.Equal(NewBool(true)))
}

func TestBool(t *testing.T) {
	v := NewBool(true)
	require.Equal(t, KindBool, v.GetType())
	b, ok := v.TryBool()
	require.True(t, ok)
	require.True(t, b)
	require.True(t, v.Equal(NewBool(true)))
	require.False(t, v.Equal(NewBool(false)))
}

func TestNull(t *testing.T) {
	v := NewNull()
	require.Equal(t, KindNull, v.GetType())
	require.True(t, v.Equal(NewNull()))
	_, ok := v.TryNumber()
	require.False(t, ok)
}

func TestString(t *testing.T) {
	v := NewString(JSString{Units: []uint16{'h', 'i'}})
	defer v.Release()

	require.Equal(t, KindString, v.GetType())
	s, ok := v.TryString()
	require.True(t, ok)
	require.Equal(t, []uint16{'h', 'i'}, s.Get().Units)

	clone := v.Clone()
	defer clone.Release()
	require.True(t, v.Equal(clone), "clone shares the same block identity")

	other := NewString(JSString{Units: []uint16{'h', 'i'}})
	defer other.Release()
	require.False(t, v.Equal(other), "distinct allocations are not equal despite equal content")

	_, ok = v.TryObject()
	require.False(t, ok)
}

func TestObject(t *testing.T) {
	v := NewObject(JSObject{Entries: []ObjectEntry{
		{Key: "b", Value: NewNumber(2)},
		{Key: "a", Value: NewNumber(1)},
	}})
	defer v.Release()

	require.Equal(t, KindObject, v.GetType())
	o, ok := v.TryObject()
	require.True(t, ok)
	entries := o.Get().Entries
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].Key, "entries are sorted lexicographically by key")
	require.Equal(t, "b", entries[1].Key)

	clone := v.Clone()
	defer clone.Release()
	require.True(t, v.Equal(clone))
}

func TestArray(t *testing.T) {
	v := NewArray(JSArray{Items: []Any{NewNumber(1), NewNumber(2)}})
	defer v.Release()

	require.Equal(t, KindArray, v.GetType())
	a, ok := v.TryArray()
	require.True(t, ok)
	require.Len(t, a.Get().Items, 2)

	clone := v.Clone()
	defer clone.Release()
	shared, ok := clone.TryArray()
	require.True(t, ok)
	_, demoted := shared.TryToMutRef()
	require.False(t, demoted, "shared between v and the clone, so refcount is 2")
}

func TestBigInt(t *testing.T) {
	n := bignum.BigIntFromU64(bignum.Positive, 7)
	v := NewBigInt(n)
	defer v.Release()

	require.Equal(t, KindBigInt, v.GetType())
	got, ok := v.TryBigInt()
	require.True(t, ok)
	require.Equal(t, 0, got.Get().Cmp(n))

	_, ok = v.TryArray()
	require.False(t, ok)
}

func TestNewStringInArenaUsesArenaBacking(t *testing.T) {
	arena := heap.NewArena()
	al := NewArenaAllocator(arena)

	v := NewStringIn(al, JSString{Units: []uint16{'h', 'i'}})
	defer v.Release()

	require.Equal(t, int64(1), arena.LiveBlocks())
	require.True(t, arena.LiveBytes() > 0)

	s, ok := v.TryString()
	require.True(t, ok)
	require.Equal(t, []uint16{'h', 'i'}, s.Get().Units)
}

func TestTypeDiscriminatesClone(t *testing.T) {
	v := NewString(JSString{Units: []uint16{'x'}})
	clone := v.Clone()
	ref1, _ := v.TryString()
	ref2, _ := clone.TryString()
	require.Same(t, ref1.Block(), ref2.Block())
	v.Release()
	clone.Release()
}
