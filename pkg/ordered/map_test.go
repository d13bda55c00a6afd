package ordered

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapInsertionOrder(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	require.Equal(t, []string{"c", "a", "b"}, m.Keys())

	// Replacing keeps the original slot.
	m.Set("a", 10)
	require.Equal(t, []string{"c", "a", "b"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 10, v)
}

func TestMapDelete(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	require.True(t, m.Delete("b"))
	require.False(t, m.Delete("b"))
	require.Equal(t, []string{"a", "c"}, m.Keys())

	// Index table must stay coherent after the shift.
	v, ok := m.Get("c")
	require.True(t, ok)
	require.Equal(t, 3, v)
	require.Equal(t, 2, m.Len())
}

func TestMapIter(t *testing.T) {
	m := NewMap[int, string]()
	for i := 0; i < 5; i++ {
		m.Set(i, "v")
	}

	var seen []int
	for k := range m.Iter() {
		seen = append(seen, k)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}
