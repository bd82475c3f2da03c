package gojaiterator_test

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/require"
	"github.com/joeycumines/go-jslib/iterator"
	gojaiterator "github.com/joeycumines/go-jslib/goja-iterator"
	"github.com/stretchr/testify/assert"
	testifyrequire "github.com/stretchr/testify/require"
)

func TestNew_NilRuntimePanics(t *testing.T) {
	assert.PanicsWithValue(t, "gojaiterator: runtime must not be nil", func() {
		_, _ = gojaiterator.New(nil)
	})
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := gojaiterator.New(goja.New(), gojaiterator.WithGlobalName(""))
	assert.EqualError(t, err, "gojaiterator: global name must not be empty")

	_, err = gojaiterator.New(goja.New(), gojaiterator.WithTeeBranches(0))
	assert.EqualError(t, err, "gojaiterator: tee branches must be between 1 and 1024")
	_, err = gojaiterator.New(goja.New(), gojaiterator.WithTeeBranches(gojaiterator.MaxTeeBranches+1))
	assert.EqualError(t, err, "gojaiterator: tee branches must be between 1 and 1024")
}

func TestEnable_GlobalName(t *testing.T) {
	env := newTestEnv(t, gojaiterator.WithGlobalName("Seq"))
	assert.Equal(t, "undefined", env.run(`typeof Iterator`).String())
	assert.Equal(t, `[1,2]`, env.json(`Seq.toArray([1, 2])`))
}

func TestRequire_Registry(t *testing.T) {
	rt := goja.New()
	registry := require.NewRegistry()
	registry.RegisterNativeModule("iterator", gojaiterator.Require())
	registry.Enable(rt)

	v, err := rt.RunString(`
		const it = require('iterator');
		JSON.stringify(it.toArray(it.slice(it.count(5), 3)));
	`)
	testifyrequire.NoError(t, err)
	assert.Equal(t, `[5,6,7]`, v.String())
}

func TestNext_Protocol(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t,
		`[{"done":false},{"value":null,"done":false},{"done":true},{"done":true}]`,
		env.json(`
			var it = Iterator.from([undefined, null]);
			[it.next(), Iterator.next(it), it.next(), it.next()];
		`),
	)
	assert.Equal(t, `true`, env.run(`
		var r = Iterator.from([undefined]).next();
		r.done === false && r.value === undefined && 'value' in r;
	`).String())
}

func TestNext_RequiresIterator(t *testing.T) {
	env := newTestEnv(t)
	err := env.mustFail(`Iterator.next([1, 2])`)
	assert.Contains(t, err.Error(), "TypeError")
	err = env.mustFail(`Iterator.from([]).next.call({})`)
	assert.Contains(t, err.Error(), "next() called on non-Iterator object")
}

func TestFrom_Sources(t *testing.T) {
	env := newTestEnv(t)
	for name, tc := range map[string]struct {
		code string
		want string
	}{
		"array":              {`Iterator.toArray(Iterator.from([1, "a", null]))`, `[1,"a",null]`},
		"string":             {`Iterator.toArray("abc")`, `["a","b","c"]`},
		"set":                {`Iterator.toArray(new Set([3, 1, 3]))`, `[3,1]`},
		"generator function": {`Iterator.toArray(function* () { yield 1; yield 2; })`, `[1,2]`},
		"generator object":   {`Iterator.toArray((function* () { yield* [4, 5]; })())`, `[4,5]`},
		"returns iterable":   {`Iterator.toArray(() => [7, 8])`, `[7,8]`},
		"protocol object": {`
			var n = 0;
			Iterator.toArray({ next: () => n < 3 ? { value: n++, done: false } : { done: true } });
		`, `[0,1,2]`},
		"sequence": {`Iterator.toArray(Iterator.from(Iterator.from([9])))`, `[9]`},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, env.json(tc.code))
		})
	}
}

func TestFrom_Identity(t *testing.T) {
	env := newTestEnv(t)
	assert.True(t, env.run(`var a = Iterator.from([1]); Iterator.from(a) === a`).ToBoolean())
	assert.True(t, env.run(`a[Symbol.iterator]() === a`).ToBoolean())
}

func TestFrom_Invalid(t *testing.T) {
	env := newTestEnv(t)
	for _, code := range []string{
		`Iterator.from(42)`,
		`Iterator.from(undefined)`,
		`Iterator.from(null)`,
		`Iterator.from({})`,
		`Iterator.from(() => () => 1)`,
	} {
		err := env.mustFail(code)
		assert.Contains(t, err.Error(), "TypeError", code)
	}
}

func TestForOf(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[2,4,6]`, env.json(`
		var out = [];
		for (const v of Iterator.from([1, 2, 3]).map(v => v * 2)) out.push(v);
		out;
	`))
	assert.Equal(t, `[0,1,2]`, env.json(`[...Iterator.slice(Iterator.count(), 3)]`))
}

func TestFilter(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[1,"a",[]]`, env.json(`Iterator.toArray(Iterator.filter([0, 1, "", null, "a", undefined, false, []]))`))
	assert.Equal(t, `[0,2,4]`, env.json(`Iterator.from(Iterator.count()).filter(v => v % 2 === 0).slice(3).toArray()`))
	err := env.mustFail(`Iterator.filter([1], 5)`)
	assert.Contains(t, err.Error(), "filter predicate must be a function")
}

func TestMap_NotCalledAfterExhaustion(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `{"values":["x1","x2"],"calls":2,"done":true}`, env.json(`
		var calls = 0;
		var it = Iterator.map([1, 2], v => { calls++; return "x" + v; });
		var values = it.toArray();
		({ values, calls, done: it.next().done && it.next().done });
	`))
}

func TestCallbackExceptionPropagates(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `"boom:Error"`, env.json(`
		var result;
		try {
			Iterator.toArray(Iterator.map([1], () => { throw new Error("boom"); }));
		} catch (e) {
			result = e.message + ":" + e.name;
		}
		result;
	`))
	// the exception is raised by the pull, not by map
	assert.Equal(t, `"lazy"`, env.json(`
		var it = Iterator.map([1], () => { throw new Error("lazy"); });
		var msg;
		try { it.next(); } catch (e) { msg = e.message; }
		msg;
	`))
}

func TestSlice(t *testing.T) {
	env := newTestEnv(t)
	for code, want := range map[string]string{
		`Iterator.toArray(Iterator.slice([0, 1, 2, 3, 4, 5], 2))`:          `[0,1]`,
		`Iterator.toArray(Iterator.slice([0, 1, 2, 3, 4, 5], 2, 5))`:       `[2,3,4]`,
		`Iterator.toArray(Iterator.slice([0, 1, 2, 3, 4, 5], 1, null, 2))`: `[1,3,5]`,
		`Iterator.toArray(Iterator.slice([0, 1, 2, 3, 4, 5], 4, 2))`:       `[]`,
		`Iterator.from("abcdef").slice(3, undefined).toArray()`:            `["d","e","f"]`,
	} {
		assert.Equal(t, want, env.json(code), code)
	}
}

func TestSlice_Lazy(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[0,[3,4],5]`, env.json(`
		var pulled = 0;
		var src = { next: () => ({ value: pulled++, done: false }) };
		var s = Iterator.slice(src, 3, 5);
		var before = pulled;
		[before, s.toArray(), pulled];
	`))
}

func TestSlice_Invalid(t *testing.T) {
	env := newTestEnv(t)
	for code, msg := range map[string]string{
		`Iterator.slice([1])`:             "slice expects 1 to 3 bounds, got 0",
		`Iterator.slice([1], 1, 2, 3, 4)`: "slice expects 1 to 3 bounds, got 4",
		`Iterator.slice([1], -1)`:         "slice bounds must not be negative",
		`Iterator.slice([1], 0, 2, 0)`:    "slice step must be at least 1",
	} {
		err := env.mustFail(code)
		assert.Contains(t, err.Error(), msg, code)
	}
}

func TestChain(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[1,2,"a",3]`, env.json(`Iterator.toArray(Iterator.chain([1, 2], [], "a", Iterator.from([3])))`))
	assert.Equal(t, `[]`, env.json(`Iterator.toArray(Iterator.chain())`))
	assert.Equal(t, `[1,2]`, env.json(`Iterator.from([1]).chain([2]).toArray()`))
}

func TestTee(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[[1,2,3],[1,2,3]]`, env.json(`Iterator.tee([1, 2, 3]).map(b => b.toArray())`))
	assert.Equal(t, `3`, env.json(`Iterator.tee([1], 3).length`))
	assert.Equal(t, `{"a":[0,1,2],"b":[0],"c":[1,2,3]}`, env.json(`
		var [a, b] = Iterator.from(Iterator.count()).tee();
		var out = { a: [a.next().value, a.next().value, a.next().value], b: [b.next().value] };
		out.c = [b.next().value, b.next().value, a.next().value];
		out;
	`))
	err := env.mustFail(`Iterator.tee([1], 0)`)
	assert.Contains(t, err.Error(), "TypeError: tee requires between 1 and 1024 branches, got 0")
	err = env.mustFail(`Iterator.tee([1], 1025)`)
	assert.Contains(t, err.Error(), "TypeError: tee requires between 1 and 1024 branches")
	assert.Equal(t, `"TypeError"`, env.json(`
		var name;
		try { Iterator.tee([1], 1e15); } catch (e) { name = e.name; }
		name;
	`))
}

func TestTee_DefaultBranches(t *testing.T) {
	env := newTestEnv(t, gojaiterator.WithTeeBranches(4))
	assert.Equal(t, `4`, env.json(`Iterator.tee([]).length`))
}

func TestReduce(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `10`, env.json(`Iterator.reduce([1, 2, 3, 4], (a, b) => a + b)`))
	assert.Equal(t, `"abc"`, env.json(`Iterator.from(["b", "c"]).reduce((a, b) => a + b, "a")`))
	assert.Equal(t, `"empty"`, env.json(`Iterator.reduce([], (a, b) => a + b, "empty")`))
	assert.Equal(t, `true`, env.json(`Iterator.reduce([], (a, b) => a + b, undefined) === undefined`))

	err := env.mustFail(`Iterator.reduce([], (a, b) => a + b)`)
	assert.Contains(t, err.Error(), "TypeError: reduce() of empty sequence with no initial value")
	err = env.mustFail(`Iterator.reduce([1])`)
	assert.Contains(t, err.Error(), "reduce requires a function")
}

func TestCycle(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[1,2,1,2,1]`, env.json(`Iterator.toArray(Iterator.slice(Iterator.cycle([1, 2]), 5))`))
	assert.Equal(t, `[]`, env.json(`Iterator.toArray(Iterator.slice(Iterator.cycle([]), 5))`))
	assert.Equal(t, `[]`, env.json(`Iterator.toArray(Iterator.cycle(Iterator.repeat("x", 0)))`))
}

func TestRepeatAndCount(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `["x","x","x"]`, env.json(`Iterator.toArray(Iterator.repeat("x", 3))`))
	assert.Equal(t, `[null,null]`, env.json(`Iterator.toArray(Iterator.slice(Iterator.repeat(null), 2))`))
	assert.Equal(t, `[-1,0,1]`, env.json(`Iterator.toArray(Iterator.slice(Iterator.count(-1), 3))`))
	assert.Equal(t, `[0.5,1.5]`, env.json(`Iterator.toArray(Iterator.slice(Iterator.count(0.5), 2))`))
	for _, code := range []string{
		`Iterator.count("1")`,
		`Iterator.count(null)`,
		`Iterator.count(Iterator.repeat(1, 3))`,
	} {
		err := env.mustFail(code)
		assert.Contains(t, err.Error(), "TypeError: count start must be a number", code)
	}
}

func TestArrayIterator(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `["b","d"]`, env.json(`Iterator.toArray(Iterator.arrayIterator(["a", "b", "c", "d", "e"], 1, 2))`))
	assert.Equal(t, `["a","b"]`, env.json(`Iterator.toArray(Iterator.arrayIterator({ length: 2, 0: "a", 1: "b" }))`))
	assert.Equal(t, `[]`, env.json(`Iterator.toArray(Iterator.arrayIterator([1], 5))`))
	err := env.mustFail(`Iterator.arrayIterator()`)
	assert.Contains(t, err.Error(), "TypeError")
}

func TestArrayIterator_Lazy(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[0,1,2]`, env.json(`Iterator.toArray(Iterator.slice(Iterator.arrayIterator({ length: 1e15, 0: 0, 1: 1, 2: 2 }), 3))`))
	assert.Equal(t, `[999999999999999,true]`, env.json(`
		var it = Iterator.arrayIterator({ length: 1e15, 999999999999999: 1e15 - 1 }, 1e15 - 1);
		[it.next().value, it.next().done];
	`))
	assert.Equal(t, `["x","y","z"]`, env.json(`
		var arr = ["x"];
		var it = Iterator.arrayIterator({ length: 3, 0: "x", get 1() { return arr[1]; }, get 2() { return arr[2]; } });
		var out = [it.next().value];
		arr.push("y", "z");
		out.push(it.next().value, it.next().value);
		out;
	`))
	assert.Equal(t, `[1]`, env.json(`Iterator.toArray(Iterator.arrayIterator([1, 2, 3], -4, 1e15))`))
}

func TestWrapUnwrap(t *testing.T) {
	env := newTestEnv(t)
	src := iterator.Map(iterator.FromSlice([]string{"go", "js"}), func(s string) goja.Value {
		return env.rt.ToValue(s)
	})
	testifyrequire.NoError(t, env.rt.Set("fromGo", env.m.Wrap(src)))
	assert.Equal(t, `["GO","JS"]`, env.json(`fromGo.map(s => s.toUpperCase()).toArray()`))

	it, ok := env.m.Unwrap(env.run(`Iterator.from([1, 2])`))
	testifyrequire.True(t, ok)
	v, ok := it.Next()
	testifyrequire.True(t, ok)
	assert.Equal(t, int64(1), v.Export())

	_, ok = env.m.Unwrap(env.run(`[1, 2]`))
	assert.False(t, ok)
	_, ok = env.m.Unwrap(nil)
	assert.False(t, ok)
}

func TestInternalHandleNotEnumerable(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, `[]`, env.json(`Object.keys(Iterator.from([]))`))
}
