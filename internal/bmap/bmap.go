// Package bmap implements a map with []byte keys.
package bmap

// BMap maps byte string contents to values. Keys are copied on insertion,
// so callers may reuse or modify their slices afterwards.
// Keys cannot be deleted.
type BMap[T any] struct {
	smap map[string]T
}

// New creates a map, size is a hint for the number of keys.
func New[T any](size int) *BMap[T] {
	return &BMap[T]{
		smap: make(map[string]T, size),
	}
}

// Intern returns the value already stored for key, or stores value and returns it.
// The flag tells whether the key was present.
func (m *BMap[T]) Intern(key []byte, value T) (T, bool) {
	if stored, has := m.smap[string(key)]; has {
		return stored, true
	}

	m.smap[string(key)] = value
	return value, false
}
