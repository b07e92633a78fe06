package ref

import (
	"testing"

	"github.com/functionalscript/nanvm-sub000/pkg/heap"
	"github.com/stretchr/testify/require"
)

func TestMutRefToRefAndClone(t *testing.T) {
	b := heap.NewGlobalBlock("hi")
	m := NewMutRef(b)
	require.Equal(t, "hi", *m.Get())

	r := m.ToRef()
	require.EqualValues(t, 1, b.Read())

	r2 := r.Clone()
	require.EqualValues(t, 2, b.Read())

	r2.Release()
	require.EqualValues(t, 1, b.Read())

	r.Release()
}

func TestTryToMutRefSucceedsWhenSoleOwner(t *testing.T) {
	b := heap.NewGlobalBlock(7)
	m := NewMutRef(b)
	r := m.ToRef()

	mr, ok := r.TryToMutRef()
	require.True(t, ok)
	require.Equal(t, 7, *mr.Get())
	mr.Release()
}

func TestTryToMutRefFailsWhenShared(t *testing.T) {
	b := heap.NewGlobalBlock(7)
	m := NewMutRef(b)
	r1 := m.ToRef()
	r2 := r1.Clone()

	_, ok := r1.TryToMutRef()
	require.False(t, ok)

	r1.Release()
	r2.Release()
}
