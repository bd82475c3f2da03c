package gojaiterator

import (
	"errors"
	"math"
	"strconv"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-jslib/iterator"
)

// from(source): adapt any supported source; sequences are returned as-is.
func (m *Module) jsFrom(call goja.FunctionCall) goja.Value {
	src := call.Argument(0)
	if _, ok := m.Unwrap(src); ok {
		return src
	}
	return m.Wrap(m.iteratorOf(src))
}

// next(it): pull a single {value, done} result.
func (m *Module) jsNext(call goja.FunctionCall) goja.Value {
	it, ok := m.Unwrap(call.Argument(0))
	if !ok {
		panic(m.runtime.NewTypeError("next() requires an Iterator"))
	}
	return m.result(it.Next())
}

// toArray(source): drain into an array.
func (m *Module) jsToArray(call goja.FunctionCall) goja.Value {
	values := iterator.ToSlice(m.iteratorOf(call.Argument(0)))
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return m.runtime.NewArray(items...)
}

// count([start]): start, start+1, ...
func (m *Module) jsCount(call goja.FunctionCall) goja.Value {
	var start float64
	if v := call.Argument(0); !goja.IsUndefined(v) {
		switch n := v.Export().(type) {
		case int64:
			start = float64(n)
		case float64:
			start = n
		default:
			panic(m.runtime.NewTypeError("count start must be a number, got %s", describe(v)))
		}
	}
	return m.Wrap(iterator.Map(iterator.Count(start), m.toValue))
}

// cycle(source): replay the source indefinitely.
func (m *Module) jsCycle(call goja.FunctionCall) goja.Value {
	return m.Wrap(iterator.Cycle(m.iteratorOf(call.Argument(0))))
}

// repeat(value[, times]): value, times times, or indefinitely.
func (m *Module) jsRepeat(call goja.FunctionCall) goja.Value {
	value := call.Argument(0)
	if times := call.Argument(1); !goja.IsUndefined(times) && !goja.IsNull(times) {
		return m.Wrap(iterator.RepeatN(value, int(times.ToInteger())))
	}
	return m.Wrap(iterator.Repeat(value))
}

// filter(source[, predicate]): values for which predicate is truthy,
// or truthy values, if predicate is omitted.
func (m *Module) jsFilter(call goja.FunctionCall) goja.Value {
	it := m.iteratorOf(call.Argument(0))
	pred := func(v goja.Value) bool { return v.ToBoolean() }
	if arg := call.Argument(1); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
		fn, ok := goja.AssertFunction(arg)
		if !ok {
			panic(m.runtime.NewTypeError("filter predicate must be a function"))
		}
		pred = func(v goja.Value) bool { return m.call(fn, goja.Undefined(), v).ToBoolean() }
	}
	return m.Wrap(iterator.Filter(it, pred))
}

// map(source, fn): fn(value) for each value.
func (m *Module) jsMap(call goja.FunctionCall) goja.Value {
	it := m.iteratorOf(call.Argument(0))
	fn, ok := goja.AssertFunction(call.Argument(1))
	if !ok {
		panic(m.runtime.NewTypeError("map requires a function"))
	}
	return m.Wrap(iterator.Map(it, func(v goja.Value) goja.Value {
		return m.call(fn, goja.Undefined(), v)
	}))
}

// slice(source, stop) or slice(source, start, stop[, step]): a null or
// undefined stop is unbounded.
func (m *Module) jsSlice(call goja.FunctionCall) goja.Value {
	args := call.Arguments[min(1, len(call.Arguments)):]
	if len(args) < 1 || len(args) > 3 {
		panic(m.runtime.NewTypeError("slice expects 1 to 3 bounds, got %d", len(args)))
	}

	start, stop, step := goja.Undefined(), args[0], goja.Undefined()
	if len(args) > 1 {
		start, stop = args[0], args[1]
	}
	if len(args) > 2 {
		step = args[2]
	}

	bounds := [3]int{0, math.MaxInt, 1}
	for i, v := range [...]goja.Value{start, stop, step} {
		if goja.IsUndefined(v) || goja.IsNull(v) {
			continue
		}
		n := v.ToInteger()
		if n < 0 {
			panic(m.runtime.NewTypeError("slice bounds must not be negative"))
		}
		bounds[i] = int(min(n, math.MaxInt))
	}
	if bounds[2] < 1 {
		panic(m.runtime.NewTypeError("slice step must be at least 1"))
	}

	return m.Wrap(iterator.Slice(m.iteratorOf(call.Argument(0)), bounds[:]...))
}

// chain(...sources): each source, in order.
func (m *Module) jsChain(call goja.FunctionCall) goja.Value {
	its := make([]iterator.Iterator[goja.Value], len(call.Arguments))
	for i, arg := range call.Arguments {
		its[i] = m.iteratorOf(arg)
	}
	return m.Wrap(iterator.Chain(its...))
}

// tee(source[, n]): n independent copies, as an array.
func (m *Module) jsTee(call goja.FunctionCall) goja.Value {
	it := m.iteratorOf(call.Argument(0))
	n := m.teeBranches
	if arg := call.Argument(1); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
		v := arg.ToInteger()
		if v < 1 || v > MaxTeeBranches {
			panic(m.runtime.NewTypeError("tee requires between 1 and %d branches, got %s", MaxTeeBranches, arg.String()))
		}
		n = int(v)
	}
	branches := iterator.Tee(it, n)
	items := make([]any, len(branches))
	for i, branch := range branches {
		items[i] = m.Wrap(branch)
	}
	return m.runtime.NewArray(items...)
}

// reduce(source, fn[, initial]): fold left, seeding from the first value
// if initial is omitted.
func (m *Module) jsReduce(call goja.FunctionCall) goja.Value {
	it := m.iteratorOf(call.Argument(0))
	fn, ok := goja.AssertFunction(call.Argument(1))
	if !ok {
		panic(m.runtime.NewTypeError("reduce requires a function"))
	}
	reducer := func(acc, v goja.Value) goja.Value { return m.call(fn, goja.Undefined(), acc, v) }

	if len(call.Arguments) > 2 {
		return iterator.Fold(it, call.Arguments[2], reducer)
	}

	v, err := iterator.Reduce(it, reducer)
	if errors.Is(err, iterator.ErrEmptySequence) {
		panic(m.runtime.NewTypeError(err.Error()))
	} else if err != nil {
		panic(m.runtime.NewGoError(err))
	}
	return v
}

// arrayIterator(arrayLike[, start[, step]]): every step'th element,
// from start. Elements are read as they are pulled.
func (m *Module) jsArrayIterator(call goja.FunctionCall) goja.Value {
	arg := call.Argument(0)
	if goja.IsUndefined(arg) || goja.IsNull(arg) {
		panic(m.runtime.NewTypeError("arrayIterator requires an array-like object"))
	}
	obj := arg.ToObject(m.runtime)

	var length int64
	if v := obj.Get("length"); v != nil {
		length = max(0, v.ToInteger())
	}

	var i, step int64 = 0, 1
	if v := call.Argument(1); !goja.IsUndefined(v) {
		i = max(0, v.ToInteger())
	}
	if v := call.Argument(2); !goja.IsUndefined(v) {
		step = max(1, v.ToInteger())
	}

	return m.Wrap(iterator.FromFunc(func() (goja.Value, bool) {
		if i >= length {
			return nil, false
		}
		v := obj.Get(strconv.FormatInt(i, 10))
		if v == nil {
			v = goja.Undefined()
		}
		if step >= length-i {
			i = length
		} else {
			i += step
		}
		return v, true
	}))
}

func (m *Module) toValue(v float64) goja.Value { return m.runtime.ToValue(v) }
