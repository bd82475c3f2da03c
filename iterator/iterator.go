package iterator

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

type (
	// Iterator models a lazy sequence of values, which may be infinite.
	//
	// Next advances the iterator, returning the next value and true, or the
	// zero value and false, if the sequence is exhausted. Implementations
	// provided by this package guarantee that exhaustion is permanent.
	Iterator[T any] interface {
		Next() (T, bool)
	}

	// FuncIterator adapts a function to the Iterator interface, without any
	// additional state. Use [FromFunc] to wrap a function such that
	// exhaustion is sticky.
	FuncIterator[T any] func() (T, bool)

	// SeqIterator is an Iterator backed by an [iter.Seq], see [FromSeq].
	SeqIterator[T any] struct {
		next func() (T, bool)
		stop func()
		done bool
	}

	funcIterator[T any] struct {
		fn   func() (T, bool)
		done bool
	}

	sliceIterator[T any] struct {
		s    []T
		i    int
		skip int
	}

	reflectIterator struct {
		v reflect.Value
		i int
	}
)

var (
	// ErrType indicates a value could not be normalized to an Iterator.
	ErrType = errors.New(`iterator: unsupported source type`)

	// ErrEmptySequence is returned by [Reduce] when the sequence is exhausted
	// on the first pull.
	ErrEmptySequence = errors.New(`reduce() of empty sequence with no initial value`)
)

// Next calls f.
func (f FuncIterator[T]) Next() (T, bool) { return f() }

// From normalizes x into an Iterator, supporting existing iterators, slices
// and arrays (of any element type), iter.Seq values, and generator functions
// (with the same signature as Iterator.Next).
//
// An error wrapping [ErrType] is returned for any other type, including nil.
//
// WARNING: If x is an iter.Seq, the returned iterator should be consumed to
// exhaustion, or stopped, see [FromSeq].
func From(x any) (Iterator[any], error) {
	switch x := x.(type) {
	case nil:
		return nil, fmt.Errorf(`%w: <nil>`, ErrType)
	case FuncIterator[any]:
		return FromFunc(x), nil
	case Iterator[any]:
		return x, nil
	case func() (any, bool):
		return FromFunc(x), nil
	case iter.Seq[any]:
		return FromSeq(x), nil
	case func(yield func(any) bool):
		return FromSeq(x), nil
	case []any:
		return FromSlice(x), nil
	}
	if v := reflect.ValueOf(x); v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return &reflectIterator{v: v}, nil
	}
	return nil, fmt.Errorf(`%w: %T`, ErrType, x)
}

// FromSlice returns an iterator over the elements of s, in order.
// The slice is not copied.
func FromSlice[T any](s []T) Iterator[T] {
	return &sliceIterator[T]{s: s, skip: 1}
}

// FromSliceStep returns an iterator over s, starting at index start, and
// advancing by skip (values less than 1 are treated as 1).
func FromSliceStep[T any](s []T, start, skip int) Iterator[T] {
	if start < 0 {
		start = 0
	}
	if skip < 1 {
		skip = 1
	}
	return &sliceIterator[T]{s: s, i: start, skip: skip}
}

// FromFunc wraps fn, such that fn will not be called again, after it first
// indicates exhaustion.
func FromFunc[T any](fn func() (T, bool)) Iterator[T] {
	if fn == nil {
		panic(`iterator: nil func`)
	}
	return &funcIterator[T]{fn: fn}
}

// FromSeq converts a push-style iter.Seq into a pull-style iterator, using
// [iter.Pull]. Resources are released automatically once the iterator is
// exhausted, or may be released early via [SeqIterator.Stop].
func FromSeq[T any](seq iter.Seq[T]) *SeqIterator[T] {
	next, stop := iter.Pull(seq)
	return &SeqIterator[T]{next: next, stop: stop}
}

// Next implements Iterator.
func (x *SeqIterator[T]) Next() (v T, ok bool) {
	if x.done {
		return
	}
	if v, ok = x.next(); !ok {
		x.Stop()
	}
	return
}

// Stop releases the underlying iter.Pull state, after which the iterator is
// exhausted. It is safe to call Stop multiple times.
func (x *SeqIterator[T]) Stop() {
	if !x.done {
		x.done = true
		x.stop()
	}
}

// ToSlice consumes it, returning all values, in order.
// It will not return if the iterator is infinite.
func ToSlice[T any](it Iterator[T]) (s []T) {
	for {
		v, ok := it.Next()
		if !ok {
			return
		}
		s = append(s, v)
	}
}

// All adapts it for use with range-over-func. Breaking out of the loop leaves
// the iterator positioned after the last yielded value.
func All[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Truthy reports whether v is non-nil and not the zero value of its type.
// It is the default predicate used by [Filter].
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	return !reflect.ValueOf(v).IsZero()
}

func (x *funcIterator[T]) Next() (v T, ok bool) {
	if x.done {
		return
	}
	if v, ok = x.fn(); !ok {
		x.done = true
		x.fn = nil
	}
	return
}

func (x *sliceIterator[T]) Next() (v T, ok bool) {
	if x.i >= len(x.s) {
		x.i = len(x.s)
		return
	}
	v, ok = x.s[x.i], true
	x.i += x.skip
	return
}

func (x *reflectIterator) Next() (any, bool) {
	if x.i >= x.v.Len() {
		return nil, false
	}
	v := x.v.Index(x.i).Interface()
	x.i++
	return v, true
}
