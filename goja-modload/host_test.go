package gojamodload_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dop251/goja"
	gojamodload "github.com/joeycumines/go-jslib/goja-modload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.js":       `var a = 1;`,
		"b.txt":      ``,
		"sub/c.js":   ``,
		"thrower.js": `throw new Error("nope");`,
	})

	rt := goja.New()
	host := gojamodload.NewHost(rt)

	assert.True(t, host.Exists(filepath.Join(dir, "a.js")))
	assert.False(t, host.Exists(filepath.Join(dir, "sub")))
	assert.False(t, host.Exists(filepath.Join(dir, "missing.js")))

	names, err := host.List(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.js", "b.txt", "thrower.js"}, names)

	_, err = host.List(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, host.Exec(filepath.Join(dir, "a.js")))
	assert.Equal(t, int64(1), rt.Get("a").Export())

	err = host.Exec(filepath.Join(dir, "thrower.js"))
	var ex *goja.Exception
	require.ErrorAs(t, err, &ex)
	assert.Contains(t, ex.Error(), "nope")

	assert.ErrorIs(t, host.Exec(filepath.Join(dir, "missing.js")), os.ErrNotExist)
}

func TestNewHost_NilRuntimePanics(t *testing.T) {
	assert.Panics(t, func() { gojamodload.NewHost(nil) })
}
