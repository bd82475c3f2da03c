package gojaiterator

import (
	"github.com/dop251/goja"
	"github.com/joeycumines/go-jslib/iterator"
)

// iteratorOf adapts a JS value to a Go sequence. It panics with a TypeError
// if val is not a supported source.
func (m *Module) iteratorOf(val goja.Value) iterator.Iterator[goja.Value] {
	if it, ok := m.Unwrap(val); ok {
		return it
	}

	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		panic(m.runtime.NewTypeError("cannot iterate over %s", describe(val)))
	}

	// generator functions are called once, and the result adapted
	if fn, ok := goja.AssertFunction(val); ok {
		res := m.call(fn, goja.Undefined())
		if _, ok := goja.AssertFunction(res); ok {
			panic(m.runtime.NewTypeError("generator function returned a function"))
		}
		return m.iteratorOf(res)
	}

	obj := val.ToObject(m.runtime)

	if method, ok := goja.AssertFunction(obj.GetSymbol(goja.SymIterator)); ok {
		res, ok := m.call(method, obj).(*goja.Object)
		if !ok || res == nil {
			panic(m.runtime.NewTypeError("Symbol.iterator returned a non-object"))
		}
		if it, ok := m.Unwrap(res); ok {
			return it
		}
		return m.protocol(res)
	}

	if _, ok := goja.AssertFunction(obj.Get("next")); ok {
		return m.protocol(obj)
	}

	panic(m.runtime.NewTypeError("cannot iterate over %s", describe(val)))
}

// protocol pulls from a JS iterator object, i.e. one with a next method
// returning {value, done}
func (m *Module) protocol(obj *goja.Object) iterator.Iterator[goja.Value] {
	return iterator.FromFunc(func() (goja.Value, bool) {
		next, ok := goja.AssertFunction(obj.Get("next"))
		if !ok {
			panic(m.runtime.NewTypeError("iterator.next is not a function"))
		}
		res, ok := m.call(next, obj).(*goja.Object)
		if !ok || res == nil {
			panic(m.runtime.NewTypeError("iterator result is not an object"))
		}
		if done := res.Get("done"); done != nil && done.ToBoolean() {
			return nil, false
		}
		v := res.Get("value")
		if v == nil {
			v = goja.Undefined()
		}
		return v, true
	})
}

func describe(val goja.Value) string {
	switch {
	case val == nil || goja.IsUndefined(val):
		return "undefined"
	case goja.IsNull(val):
		return "null"
	default:
		return val.String()
	}
}
