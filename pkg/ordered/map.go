package ordered

import "iter"

// Map is a generic key/value map that preserves insertion order.
// Lookup is O(1); iteration always visits entries in the order they
// were first inserted. It is not safe for concurrent use.
type Map[K comparable, V any] struct {
	keys []K
	idx  map[K]int
	vals []V
}

// NewMap creates an empty ordered map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		idx: make(map[K]int),
	}
}

// Set inserts or replaces the value for key. A replaced key keeps its
// original position in the iteration order.
func (m *Map[K, V]) Set(key K, value V) {
	if i, ok := m.idx[key]; ok {
		m.vals[i] = value
		return
	}
	m.idx[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, value)
}

// Get returns the value for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if i, ok := m.idx[key]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.idx[key]
	return ok
}

// Delete removes key from the map, preserving the relative order of the
// remaining entries. Returns true if the key was present.
func (m *Map[K, V]) Delete(key K) bool {
	i, ok := m.idx[key]
	if !ok {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	delete(m.idx, key)
	for j := i; j < len(m.keys); j++ {
		m.idx[m.keys[j]] = j
	}
	return true
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// At returns the key and value at position i in insertion order.
// Panics if i is out of bounds.
func (m *Map[K, V]) At(i int) (K, V) {
	return m.keys[i], m.vals[i]
}

// Iter returns a sequence over entries in insertion order.
func (m *Map[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	m.keys = m.keys[:0]
	m.vals = m.vals[:0]
	m.idx = make(map[K]int)
}
