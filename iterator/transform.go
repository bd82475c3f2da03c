package iterator

type (
	filterIterator[T any] struct {
		it   Iterator[T]
		pred func(T) bool
		done bool
	}

	mapIterator[T, R any] struct {
		it   Iterator[T]
		fn   func(T) R
		done bool
	}

	sliceRangeIterator[T any] struct {
		it Iterator[T]
		// next is the upstream index of the next value to yield
		next int
		stop int
		step int
		// pulled is the number of values consumed from upstream
		pulled int
		done   bool
	}

	chainIterator[T any] struct {
		its []Iterator[T]
	}

	cycleIterator[T any] struct {
		it    Iterator[T]
		saved []T
		i     int
		state uint8
	}
)

const (
	cycleRecording uint8 = iota
	cycleReplaying
	cycleEmpty
)

// Filter returns an iterator yielding only the values of it for which pred
// returns true. A nil pred filters out zero values, see [Truthy].
func Filter[T any](it Iterator[T], pred func(T) bool) Iterator[T] {
	if pred == nil {
		pred = func(v T) bool { return Truthy(v) }
	}
	return &filterIterator[T]{it: it, pred: pred}
}

// Map returns an iterator yielding fn applied to each value of it. The fn
// will not be called once it is exhausted.
func Map[T, R any](it Iterator[T], fn func(T) R) Iterator[R] {
	return &mapIterator[T, R]{it: it, fn: fn}
}

// Slice returns an iterator over a range of the (upstream) indexes of it,
// accepting bounds in the forms (stop), (start, stop), or
// (start, stop, step), with the default start of 0, and step of 1.
//
// Values prior to start are consumed and discarded lazily, i.e. upon the
// first pull, and no upstream values are consumed once start >= stop.
//
// Slice panics if given an invalid number of bounds, negative bounds, or a
// step less than 1.
func Slice[T any](it Iterator[T], bounds ...int) Iterator[T] {
	var start, stop, step int
	switch len(bounds) {
	case 1:
		stop, step = bounds[0], 1
	case 2:
		start, stop, step = bounds[0], bounds[1], 1
	case 3:
		start, stop, step = bounds[0], bounds[1], bounds[2]
	default:
		panic(`iterator: slice requires 1 to 3 bounds`)
	}
	if start < 0 || stop < 0 {
		panic(`iterator: slice bounds must not be negative`)
	}
	if step < 1 {
		panic(`iterator: slice step must be at least 1`)
	}
	return &sliceRangeIterator[T]{it: it, next: start, stop: stop, step: step}
}

// Chain returns an iterator yielding all values of each of its, in order.
func Chain[T any](its ...Iterator[T]) Iterator[T] {
	return &chainIterator[T]{its: its}
}

// Cycle returns an iterator that yields the values of it, saving each, then
// (once it is exhausted) replays the saved values, indefinitely.
// If it is empty, the returned iterator is also empty.
func Cycle[T any](it Iterator[T]) Iterator[T] {
	return &cycleIterator[T]{it: it}
}

func (x *filterIterator[T]) Next() (v T, ok bool) {
	for !x.done {
		if v, ok = x.it.Next(); !ok {
			x.done = true
			break
		}
		if x.pred(v) {
			return
		}
	}
	var zero T
	return zero, false
}

func (x *mapIterator[T, R]) Next() (r R, ok bool) {
	if x.done {
		return
	}
	v, ok := x.it.Next()
	if !ok {
		x.done = true
		return
	}
	return x.fn(v), true
}

func (x *sliceRangeIterator[T]) Next() (v T, ok bool) {
	if x.done {
		return
	}
	if x.next >= x.stop {
		x.done = true
		return
	}
	for x.pulled <= x.next {
		if v, ok = x.it.Next(); !ok {
			x.done = true
			var zero T
			return zero, false
		}
		x.pulled++
	}
	x.next += x.step
	return v, true
}

func (x *chainIterator[T]) Next() (v T, ok bool) {
	for len(x.its) != 0 {
		if v, ok = x.its[0].Next(); ok {
			return
		}
		x.its[0] = nil
		x.its = x.its[1:]
	}
	return
}

func (x *cycleIterator[T]) Next() (v T, ok bool) {
	switch x.state {
	case cycleRecording:
		if v, ok = x.it.Next(); ok {
			x.saved = append(x.saved, v)
			return
		}
		x.it = nil
		if len(x.saved) == 0 {
			x.state = cycleEmpty
			return
		}
		x.state = cycleReplaying
		fallthrough
	case cycleReplaying:
		v = x.saved[x.i]
		x.i = (x.i + 1) % len(x.saved)
		return v, true
	default:
		return
	}
}
