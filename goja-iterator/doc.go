// Package gojaiterator exposes lazy, pull-based sequences (see
// [github.com/joeycumines/go-jslib/iterator]) to JS code running in
// [github.com/dop251/goja].
//
// Sequences are JS objects implementing the iterator protocol: next()
// returns {value, done}, and each is iterable (for...of, spread), yielding
// itself. Exhaustion is reported only via done, so undefined and null are
// ordinary values.
//
// Any JS iterable, iterator (an object with a next method), or generator
// function may be used as a source. Generator functions are called once,
// without arguments.
//
// # Usage
//
// Use [Require] to create a [github.com/dop251/goja_nodejs/require.ModuleLoader],
// create a [Module] directly with [New], or use [Enable] to install the
// global Iterator object.
//
//	registry := require.NewRegistry()
//	registry.RegisterNativeModule("iterator", gojaiterator.Require())
//
// From JavaScript:
//
//	const Iterator = require('iterator');
//	const evens = Iterator.filter(Iterator.count(), v => v % 2 === 0);
//	Iterator.toArray(Iterator.slice(evens, 3)); // [0, 2, 4]
//	Iterator.from([1, 2, 3]).map(v => v * 2).toArray(); // [2, 4, 6]
//
// Exceptions thrown by callbacks propagate unchanged, from the pull that
// invoked them.
package gojaiterator
