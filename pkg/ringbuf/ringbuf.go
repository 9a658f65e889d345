// Package ringbuf provides a fixed-capacity ring of numeric samples with
// cheap aggregate queries, used to smooth values over a sliding window.
package ringbuf

import "golang.org/x/exp/constraints"

// Buffer keeps the last N pushed values.
type Buffer[T constraints.Float] struct {
	data  []T
	index int
	full  bool
}

// New creates a buffer holding up to capacity values.
func New[T constraints.Float](capacity int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, capacity)}
}

// Push inserts a value, evicting the oldest once the buffer is full.
func (b *Buffer[T]) Push(value T) {
	b.data[b.index] = value
	b.index++
	if b.index == len(b.data) {
		b.index = 0
		b.full = true
	}
}

// Len reports how many values are currently held.
func (b *Buffer[T]) Len() int {
	if b.full {
		return len(b.data)
	}
	return b.index
}

// Min returns the smallest held value, zero when empty.
func (b *Buffer[T]) Min() T {
	n := b.Len()
	if n == 0 {
		return 0
	}

	out := b.data[0]
	for _, v := range b.data[1:n] {
		if v < out {
			out = v
		}
	}
	return out
}

// Max returns the largest held value, zero when empty.
func (b *Buffer[T]) Max() T {
	n := b.Len()
	if n == 0 {
		return 0
	}

	out := b.data[0]
	for _, v := range b.data[1:n] {
		if v > out {
			out = v
		}
	}
	return out
}

// Avg returns the mean of the held values, zero when empty.
func (b *Buffer[T]) Avg() T {
	n := b.Len()
	if n == 0 {
		return 0
	}

	var sum T
	for _, v := range b.data[:n] {
		sum += v
	}
	return sum / T(n)
}
