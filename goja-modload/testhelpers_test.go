package gojamodload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dop251/goja"
	gojamodload "github.com/joeycumines/go-jslib/goja-modload"
	"github.com/joeycumines/go-jslib/modload"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	rt  *goja.Runtime
	m   *gojamodload.Module
	dir string
	t   *testing.T
}

// newTestEnv binds a module, with a search path of a single, temporary
// directory, populated with files
func newTestEnv(t *testing.T, files map[string]string, opts ...gojamodload.Option) *testEnv {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files)
	rt := goja.New()
	m, err := gojamodload.New(rt, append([]gojamodload.Option{
		gojamodload.WithLoaderOptions(modload.WithSearchPath(dir)),
	}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, m.Bind())
	return &testEnv{rt: rt, m: m, dir: dir, t: t}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, filepath.FromSlash(name))
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
