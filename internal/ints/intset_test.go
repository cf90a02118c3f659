package ints

import (
	"testing"

	. "github.com/ava12/rdx/internal/test"
)

func TestAddContains(t *testing.T) {
	s := NewSet(0)
	ExpectInt(t, 0, s.Len())
	s.Add(0, 5, 64, 200)
	for _, item := range []int{0, 5, 64, 200} {
		Assert(t, s.Contains(item), "expecting %d in set", item)
	}
	for _, item := range []int{-1, 1, 63, 65, 199, 1000} {
		Assert(t, !s.Contains(item), "unexpected %d in set", item)
	}
	ExpectInt(t, 4, s.Len())
}

func TestRemove(t *testing.T) {
	s := NewSet(10).Add(1, 2, 3)
	s.Remove(2, 100, -5)
	ExpectInt(t, 2, s.Len())
	Assert(t, !s.Contains(2), "2 not removed")
	s.Remove(1, 3)
	ExpectInt(t, 0, s.Len())
}

func TestVisit(t *testing.T) {
	s := NewSet(4)
	ExpectBool(t, true, s.Visit(7))
	ExpectBool(t, false, s.Visit(7))
	ExpectBool(t, true, s.Visit(70))
}

func TestToSlice(t *testing.T) {
	s := NewSet(0).Add(130, 3, 64, 3)
	got := s.ToSlice()
	expected := []int{3, 64, 130}
	ExpectInt(t, len(expected), len(got))
	for i, item := range expected {
		ExpectInt(t, item, got[i])
	}
}
