package gojaiterator_test

import (
	"testing"

	"github.com/dop251/goja"
	gojaiterator "github.com/joeycumines/go-jslib/goja-iterator"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	rt *goja.Runtime
	m  *gojaiterator.Module
	t  *testing.T
}

func newTestEnv(t *testing.T, opts ...gojaiterator.Option) *testEnv {
	t.Helper()
	rt := goja.New()
	m, err := gojaiterator.Enable(rt, opts...)
	require.NoError(t, err)
	return &testEnv{rt: rt, m: m, t: t}
}

func (e *testEnv) run(code string) goja.Value {
	e.t.Helper()
	v, err := e.rt.RunString(code)
	require.NoError(e.t, err)
	return v
}

// json evaluates code, returning the result as JSON
func (e *testEnv) json(code string) string {
	e.t.Helper()
	require.NoError(e.t, e.rt.Set("__result", e.run(code)))
	return e.run(`JSON.stringify(__result)`).String()
}

func (e *testEnv) mustFail(code string) error {
	e.t.Helper()
	_, err := e.rt.RunString(code)
	require.Error(e.t, err)
	return err
}
