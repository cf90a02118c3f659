// Package ints implements a growable set of small non-negative integers.
package ints

import "math/bits"

const chunkBits = bits.UintSize

// Set is a bitset, intended for dense integer keys like rule indexes.
// Negative items are never contained and are ignored by Add and Remove.
type Set struct {
	chunks []uint
}

// NewSet creates a set with preallocated room for items 0 .. capacity - 1.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{make([]uint, (capacity+chunkBits-1)/chunkBits)}
}

func (s *Set) grow(item int) {
	need := item/chunkBits + 1
	if need <= len(s.chunks) {
		return
	}

	chunks := make([]uint, need)
	copy(chunks, s.chunks)
	s.chunks = chunks
}

func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		s.grow(item)
		s.chunks[item/chunkBits] |= 1 << (uint(item) % chunkBits)
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item >= 0 && item/chunkBits < len(s.chunks) {
			s.chunks[item/chunkBits] &^= 1 << (uint(item) % chunkBits)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || item/chunkBits >= len(s.chunks) {
		return false
	}
	return s.chunks[item/chunkBits]&(1<<(uint(item)%chunkBits)) != 0
}

// Visit adds item and reports whether it was absent before.
func (s *Set) Visit(item int) bool {
	if s.Contains(item) {
		return false
	}
	s.Add(item)
	return true
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			result = append(result, i*chunkBits+bit)
			chunk &= chunk - 1
		}
	}
	return result
}
