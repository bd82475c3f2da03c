package modload

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// HomeToken may be used within paths and module names, and is replaced with
// the home directory. It is retained for compatibility with existing scripts.
const HomeToken = `%(HOME)s`

const (
	// EnvLibraryPath is the first environment variable used to extend the
	// default search path.
	EnvLibraryPath = `LD_LIBRARY_PATH`

	// EnvSearchPath is the second environment variable used to extend the
	// default search path.
	EnvSearchPath = `JSLIB_PATH`

	// DefaultHome is used when HOME is not set.
	DefaultHome = `/usr`
)

// SearchPath is an ordered list of absolute directory paths, used to
// resolve symbolic module names. Earlier entries take priority.
// It is safe for concurrent use.
type SearchPath struct {
	home  string
	mu    sync.RWMutex
	paths []string
}

// DefaultPaths returns the unexpanded default search path entries, which
// precede any derived from the environment.
func DefaultPaths() []string {
	return []string{`.`, HomeToken + `/lib`, HomeToken + `/lib/js`}
}

// NewSearchPath initializes a SearchPath, expanding each of paths, in order.
func NewSearchPath(home string, paths ...string) (*SearchPath, error) {
	x := &SearchPath{home: home}
	for _, p := range paths {
		if err := x.Add(p); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// SplitList splits a list of paths, using the platform separator,
// discarding empty segments.
func SplitList(list string) []string {
	var paths []string
	for _, p := range filepath.SplitList(list) {
		if p != `` {
			paths = append(paths, p)
		}
	}
	return paths
}

// Home returns the home directory used for expansion.
func (x *SearchPath) Home() string { return x.home }

// Add appends a directory, after expansion.
func (x *SearchPath) Add(path string) error {
	p, err := x.Expand(path)
	if err != nil {
		return err
	}
	x.mu.Lock()
	x.paths = append(x.paths, p)
	x.mu.Unlock()
	return nil
}

// Prepend inserts a directory at the start, after expansion.
func (x *SearchPath) Prepend(path string) error {
	p, err := x.Expand(path)
	if err != nil {
		return err
	}
	x.mu.Lock()
	x.paths = slices.Insert(x.paths, 0, p)
	x.mu.Unlock()
	return nil
}

// Remove deletes all occurrences of the expanded path, returning the number
// of entries removed.
func (x *SearchPath) Remove(path string) (int, error) {
	p, err := x.Expand(path)
	if err != nil {
		return 0, err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	n := len(x.paths)
	x.paths = slices.DeleteFunc(x.paths, func(v string) bool { return v == p })
	return n - len(x.paths), nil
}

// Paths returns a copy of the current entries.
func (x *SearchPath) Paths() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.paths)
}

// Len returns the number of entries.
func (x *SearchPath) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.paths)
}

// Expand resolves HomeToken and a leading "~" in path, then makes it
// absolute, and clean.
func (x *SearchPath) Expand(path string) (string, error) {
	if path == `` {
		return ``, errors.New(`modload: empty path`)
	}
	return filepath.Abs(x.expandHome(path))
}

func (x *SearchPath) expandHome(path string) string {
	path = strings.ReplaceAll(path, HomeToken, x.home)
	if path == `~` || strings.HasPrefix(path, `~`+string(os.PathSeparator)) || strings.HasPrefix(path, `~/`) {
		path = x.home + path[1:]
	}
	return path
}
