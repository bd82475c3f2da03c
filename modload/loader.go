package modload

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/joeycumines/logiface"
)

// Loader resolves and loads modules. See the package documentation for
// details.
//
// Loading (Require, Include, Load) must be confined to a single goroutine,
// as is the case for script runtimes, though it may nest. The search path,
// CurrentFile, Loaded, and Modules are safe to call concurrently with it.
type Loader struct {
	host   Host
	path   *SearchPath
	logger *logiface.Logger[logiface.Event]
	ext    string

	mu     sync.Mutex
	loaded map[string]struct{}
	// stack of files being executed, the last being the current file
	stack []string
}

const maxSuggestions = 3

// New constructs a Loader. The WithHost option is required.
func New(opts ...Option) (*Loader, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, fmt.Errorf(`modload: %w`, err)
	}

	path, err := NewSearchPath(cfg.home, cfg.paths...)
	if err != nil {
		return nil, err
	}

	return &Loader{
		host:   cfg.host,
		path:   path,
		logger: cfg.logger,
		ext:    cfg.ext,
		loaded: make(map[string]struct{}),
	}, nil
}

// SearchPath returns the search path, which may be modified directly.
func (x *Loader) SearchPath() *SearchPath { return x.path }

// Extension returns the file extension appended to module names.
func (x *Loader) Extension() string { return x.ext }

// AddPath appends a directory to the search path.
func (x *Loader) AddPath(path string) error { return x.path.Add(path) }

// PrependPath inserts a directory at the start of the search path.
func (x *Loader) PrependPath(path string) error { return x.path.Prepend(path) }

// RemovePath removes all occurrences of a directory from the search path.
func (x *Loader) RemovePath(path string) error {
	_, err := x.path.Remove(path)
	return err
}

// CurrentFile returns the absolute path of the module currently executing,
// if any.
func (x *Loader) CurrentFile() (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if len(x.stack) == 0 {
		return ``, false
	}
	return x.stack[len(x.stack)-1], true
}

// Loaded reports whether name has been successfully loaded via Require.
func (x *Loader) Loaded(name string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.loaded[name]
	return ok
}

// Modules returns the names loaded via Require, sorted.
func (x *Loader) Modules() []string {
	x.mu.Lock()
	names := make([]string, 0, len(x.loaded))
	for name := range x.loaded {
		names = append(names, name)
	}
	x.mu.Unlock()
	sort.Strings(names)
	return names
}

// Require loads each of names, in order, skipping any already loaded via
// Require, under the exact same name. It stops at the first failure.
func (x *Loader) Require(names ...string) error {
	for _, name := range names {
		if x.Loaded(name) {
			x.logger.Trace().
				Str(`module`, name).
				Log(`module already loaded`)
			continue
		}
		if err := x.Load(name); err != nil {
			return err
		}
		x.mu.Lock()
		x.loaded[name] = struct{}{}
		x.mu.Unlock()
	}
	return nil
}

// Include loads each of names, in order, stopping at the first failure.
func (x *Loader) Include(names ...string) error {
	for _, name := range names {
		if err := x.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// Load resolves name, and executes the module, regardless of whether it was
// previously loaded. Any failure will be an *ImportError.
func (x *Loader) Load(name string) error {
	err := x.load(name)
	if err != nil {
		x.logger.Err().
			Str(`module`, name).
			Err(err).
			Log(`import failed`)
	}
	return err
}

func (x *Loader) load(name string) error {
	if name == `` {
		return &ImportError{Name: name, Cause: errors.New(`empty module name`)}
	}

	target := x.path.expandHome(name)

	if filepath.IsAbs(target) {
		path := x.withExt(filepath.Clean(target))
		if !x.host.Exists(path) {
			return &ImportError{Name: name, Paths: []string{path}}
		}
		return x.exec(name, path)
	}

	dirs := x.path.Paths()
	tried := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		path := x.withExt(filepath.Join(dir, target))
		tried = append(tried, path)
		if x.host.Exists(path) {
			return x.exec(name, path)
		}
		x.logger.Debug().
			Str(`module`, name).
			Str(`path`, path).
			Log(`module candidate not found`)
	}

	return &ImportError{
		Name:        name,
		Paths:       tried,
		Suggestions: x.suggest(target, dirs),
	}
}

func (x *Loader) exec(name, path string) error {
	if chain := x.enter(path); chain != nil {
		return &ImportError{Name: name, Paths: []string{path}, Cause: &CycleError{Chain: chain}}
	}
	defer x.exit(path)

	x.logger.Info().
		Str(`module`, name).
		Str(`path`, path).
		Log(`loading module`)

	if err := x.host.Exec(path); err != nil {
		return &ImportError{Name: name, Paths: []string{path}, Cause: err}
	}

	return nil
}

// enter pushes path as the current file, or returns the import chain, if
// it is already being loaded
func (x *Loader) enter(path string) []string {
	x.mu.Lock()
	defer x.mu.Unlock()
	if i := slices.Index(x.stack, path); i >= 0 {
		return append(slices.Clone(x.stack[i:]), path)
	}
	x.stack = append(x.stack, path)
	return nil
}

// exit removes path, pushed by enter, restoring the previous current file
func (x *Loader) exit(path string) {
	x.mu.Lock()
	if i := slices.Index(x.stack, path); i >= 0 {
		x.stack = slices.Delete(x.stack, i, i+1)
	}
	x.mu.Unlock()
}

func (x *Loader) withExt(path string) string {
	if strings.HasSuffix(path, x.ext) {
		return path
	}
	return path + x.ext
}

// suggest finds modules with names similar to target, if the host supports it
func (x *Loader) suggest(target string, dirs []string) []string {
	lister, ok := x.host.(Lister)
	if !ok {
		return nil
	}

	dir, base := filepath.Split(strings.TrimSuffix(target, x.ext))
	if base == `` {
		return nil
	}
	limit := max(1, len(base)/3)

	type candidate struct {
		name string
		dist int
	}
	var (
		candidates []candidate
		seen       = make(map[string]struct{})
	)
	for _, d := range dirs {
		entries, err := lister.List(filepath.Join(d, dir))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !strings.HasSuffix(entry, x.ext) {
				continue
			}
			entry = strings.TrimSuffix(entry, x.ext)
			if _, ok := seen[entry]; ok || entry == base {
				continue
			}
			seen[entry] = struct{}{}
			if dist := levenshtein.ComputeDistance(base, entry); dist <= limit {
				candidates = append(candidates, candidate{name: dir + entry, dist: dist})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	var suggestions []string
	for i := 0; i < len(candidates) && i < maxSuggestions; i++ {
		suggestions = append(suggestions, candidates[i].name)
	}
	return suggestions
}
