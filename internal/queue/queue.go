// Package queue implements a FIFO used as a work list in graph traversals.
package queue

const minSize = 4

// Queue is a ring buffer, its capacity is always a power of two.
type Queue[T any] struct {
	items      []T
	head, size int
	zero       T
}

func New[T any](items ...T) *Queue[T] {
	capacity := minSize
	for capacity < len(items) {
		capacity <<= 1
	}
	q := &Queue[T]{items: make([]T, capacity)}
	for _, item := range items {
		q.Append(item)
	}
	return q
}

func (q *Queue[T]) mask() int {
	return len(q.items) - 1
}

// Items returns queued items in FIFO order without removing them.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.size)
	for i := range result {
		result[i] = q.items[(q.head+i)&q.mask()]
	}
	return result
}

func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)&q.mask()] = item
	q.size++
	return q
}

// First removes and returns the oldest item.
func (q *Queue[T]) First() (T, bool) {
	if q.size == 0 {
		return q.zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) & q.mask()
	q.size--
	return result, true
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	copy(items, q.Items())
	q.items = items
	q.head = 0
}
