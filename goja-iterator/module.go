package gojaiterator

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-jslib/iterator"
)

// Module provides lazy sequences for a [goja.Runtime]. Each Module instance
// is bound to a single runtime, and the sequences it creates must only be
// used with that runtime.
type Module struct {
	runtime     *goja.Runtime
	prototype   *goja.Object
	globalName  string
	teeBranches int
}

// handle is stored on each sequence object, to recover the Go iterator
type handle struct {
	it iterator.Iterator[goja.Value]
}

// New creates a new [Module] bound to the given [goja.Runtime].
//
// New panics if runtime is nil, as this is a programming error
// (invariant violation). It returns an error if option validation
// fails.
func New(runtime *goja.Runtime, opts ...Option) (*Module, error) {
	if runtime == nil {
		panic("gojaiterator: runtime must not be nil")
	}

	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("gojaiterator: %w", err)
	}

	m := &Module{
		runtime:     runtime,
		globalName:  cfg.globalName,
		teeBranches: cfg.teeBranches,
	}
	m.prototype = m.newPrototype()
	return m, nil
}

// SetupExports wires the module's JS API onto the given exports object.
// This is equivalent to the setup performed by [Require] but allows
// external consumers to configure exports without the require() mechanism.
func (m *Module) SetupExports(exports *goja.Object) {
	_ = exports.Set("from", m.runtime.ToValue(m.jsFrom))
	_ = exports.Set("next", m.runtime.ToValue(m.jsNext))
	_ = exports.Set("toArray", m.runtime.ToValue(m.jsToArray))
	_ = exports.Set("count", m.runtime.ToValue(m.jsCount))
	_ = exports.Set("cycle", m.runtime.ToValue(m.jsCycle))
	_ = exports.Set("repeat", m.runtime.ToValue(m.jsRepeat))
	_ = exports.Set("filter", m.runtime.ToValue(m.jsFilter))
	_ = exports.Set("map", m.runtime.ToValue(m.jsMap))
	_ = exports.Set("slice", m.runtime.ToValue(m.jsSlice))
	_ = exports.Set("chain", m.runtime.ToValue(m.jsChain))
	_ = exports.Set("tee", m.runtime.ToValue(m.jsTee))
	_ = exports.Set("reduce", m.runtime.ToValue(m.jsReduce))
	_ = exports.Set("arrayIterator", m.runtime.ToValue(m.jsArrayIterator))
}

// Require returns a [github.com/dop251/goja_nodejs/require.ModuleLoader]
// that registers the iterator module. This follows the standard Goja
// Node.js module pattern.
//
//	registry := require.NewRegistry()
//	registry.RegisterNativeModule("iterator", gojaiterator.Require())
func Require(opts ...Option) func(runtime *goja.Runtime, module *goja.Object) {
	return func(runtime *goja.Runtime, module *goja.Object) {
		m, err := New(runtime, opts...)
		if err != nil {
			panic(err)
		}
		exports := module.Get("exports").(*goja.Object)
		m.SetupExports(exports)
	}
}

// Enable creates a [Module], and installs its exports as a global object,
// named Iterator, unless configured otherwise via [WithGlobalName].
func Enable(runtime *goja.Runtime, opts ...Option) (*Module, error) {
	m, err := New(runtime, opts...)
	if err != nil {
		return nil, err
	}
	exports := runtime.NewObject()
	m.SetupExports(exports)
	if err := runtime.Set(m.globalName, exports); err != nil {
		return nil, fmt.Errorf("gojaiterator: %w", err)
	}
	return m, nil
}

// Wrap exposes a Go sequence to JS. The values must belong to the Module's
// runtime.
func (m *Module) Wrap(it iterator.Iterator[goja.Value]) *goja.Object {
	if it == nil {
		panic("gojaiterator: iterator must not be nil")
	}
	obj := m.runtime.NewObject()
	_ = obj.SetPrototype(m.prototype)
	_ = obj.DefineDataProperty("_iterator", m.runtime.ToValue(&handle{it: it}), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)
	return obj
}

// Unwrap returns the Go sequence backing a value created by this package.
func (m *Module) Unwrap(val goja.Value) (iterator.Iterator[goja.Value], bool) {
	obj, ok := val.(*goja.Object)
	if !ok || obj == nil {
		return nil, false
	}
	hv := obj.Get("_iterator")
	if hv == nil || goja.IsUndefined(hv) {
		return nil, false
	}
	h, ok := hv.Export().(*handle)
	if !ok || h == nil {
		return nil, false
	}
	return h.it, true
}

// newPrototype builds the prototype shared by sequence objects, which
// provides the iterator protocol, and method forms of the module functions
func (m *Module) newPrototype() *goja.Object {
	proto := m.runtime.NewObject()

	_ = proto.Set("next", m.runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		it, ok := m.Unwrap(call.This)
		if !ok {
			panic(m.runtime.NewTypeError("next() called on non-Iterator object"))
		}
		return m.result(it.Next())
	}))

	_ = proto.SetSymbol(goja.SymIterator, m.runtime.ToValue(func(call goja.FunctionCall) goja.Value {
		return call.This
	}))

	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"toArray": m.jsToArray,
		"cycle":   m.jsCycle,
		"filter":  m.jsFilter,
		"map":     m.jsMap,
		"slice":   m.jsSlice,
		"chain":   m.jsChain,
		"tee":     m.jsTee,
		"reduce":  m.jsReduce,
	} {
		_ = proto.Set(name, m.runtime.ToValue(m.method(fn)))
	}

	return proto
}

// method adapts a module function to be called with this as the first
// argument
func (m *Module) method(fn func(goja.FunctionCall) goja.Value) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make([]goja.Value, 0, len(call.Arguments)+1)
		args = append(args, call.This)
		args = append(args, call.Arguments...)
		call.Arguments = args
		return fn(call)
	}
}

// result builds an iterator result object, {value, done}
func (m *Module) result(v goja.Value, ok bool) goja.Value {
	res := m.runtime.NewObject()
	if !ok {
		v = goja.Undefined()
	}
	_ = res.Set("value", v)
	_ = res.Set("done", !ok)
	return res
}

// call invokes fn, propagating any JS exception as a panic, which goja
// rethrows
func (m *Module) call(fn goja.Callable, this goja.Value, args ...goja.Value) goja.Value {
	v, err := fn(this, args...)
	if err != nil {
		panic(err)
	}
	return v
}
