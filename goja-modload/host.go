package gojamodload

import (
	"os"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-jslib/modload"
)

// Host implements [modload.Host] and [modload.Lister] using the OS
// filesystem, executing each file as a script, in the global scope of a
// [goja.Runtime].
type Host struct {
	runtime *goja.Runtime
}

var (
	_ modload.Host   = (*Host)(nil)
	_ modload.Lister = (*Host)(nil)
)

// NewHost creates a [Host] bound to the given [goja.Runtime]. It panics if
// runtime is nil.
func NewHost(runtime *goja.Runtime) *Host {
	if runtime == nil {
		panic("gojamodload: runtime must not be nil")
	}
	return &Host{runtime: runtime}
}

// Exists reports whether path is a regular file.
func (h *Host) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exec runs the file at path as a script. It may be called while another
// script is running, e.g. from a native function. JS exceptions are
// returned as (or wrap) *goja.Exception, and may be unwrapped to any Go
// error they carry, e.g. a nested import failure.
func (h *Host) Exec(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := h.runtime.RunScript(path, string(src)); err != nil {
		return wrapException(err)
	}
	return nil
}

// List returns the names of the entries in dir.
func (h *Host) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
