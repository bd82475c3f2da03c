package iterator

import (
	"golang.org/x/exp/constraints"
)

type (
	// Number is the constraint for [Count].
	Number interface {
		constraints.Integer | constraints.Float
	}

	countIterator[T Number] struct {
		n T
	}

	repeatIterator[T any] struct {
		v T
		// n is the number of remaining values, or -1 if unbounded
		n int
	}
)

// Count returns an infinite iterator yielding start, start+1, start+2, etc.
// Integer overflow wraps, per Go semantics.
func Count[T Number](start T) Iterator[T] {
	return &countIterator[T]{n: start}
}

// Repeat returns an infinite iterator yielding v.
func Repeat[T any](v T) Iterator[T] {
	return &repeatIterator[T]{v: v, n: -1}
}

// RepeatN returns an iterator yielding v, n times.
func RepeatN[T any](v T, n int) Iterator[T] {
	return &repeatIterator[T]{v: v, n: max(n, 0)}
}

func (x *countIterator[T]) Next() (T, bool) {
	v := x.n
	x.n++
	return v, true
}

func (x *repeatIterator[T]) Next() (v T, ok bool) {
	switch {
	case x.n < 0:
		return x.v, true
	case x.n == 0:
		return
	default:
		x.n--
		return x.v, true
	}
}
