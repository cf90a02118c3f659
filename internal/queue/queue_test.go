package queue

import (
	"testing"

	. "github.com/ava12/rdx/internal/test"
)

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectInt(t, minSize, len(q.items))
	ExpectInt(t, 0, len(q.Items()))
	_, fetched := q.First()
	ExpectBool(t, false, fetched)
}

func TestPrefilled(t *testing.T) {
	q := New[int](1, 2, 3, 4, 5)
	ExpectInt(t, 8, len(q.items))
	items := q.Items()
	ExpectInt(t, 5, len(items))
	for i, item := range items {
		ExpectInt(t, i+1, item)
	}
}

func TestFifoOrder(t *testing.T) {
	q := New[int]()
	for i := 0; i < 3; i++ {
		q.Append(i)
	}
	first, _ := q.First()
	ExpectInt(t, 0, first)

	for i := 3; i < 20; i++ {
		q.Append(i)
	}
	ExpectInt(t, 19, len(q.Items()))
	for i := 1; i < 20; i++ {
		item, fetched := q.First()
		ExpectBool(t, true, fetched)
		ExpectInt(t, i, item)
	}
	_, fetched := q.First()
	ExpectBool(t, false, fetched)
}

func TestGrowWrapped(t *testing.T) {
	q := New[string]("a", "b", "c")
	q.First()
	q.First()
	q.Append("d").Append("e").Append("f")
	ExpectInt(t, minSize, len(q.items))
	q.Append("g")
	ExpectInt(t, minSize<<1, len(q.items))
	expected := []string{"c", "d", "e", "f", "g"}
	got := q.Items()
	ExpectInt(t, len(expected), len(got))
	for i, s := range expected {
		ExpectString(t, s, got[i])
	}
}
