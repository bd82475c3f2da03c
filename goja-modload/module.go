package gojamodload

import (
	"fmt"
	"slices"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/dop251/goja_nodejs/util"
	"github.com/joeycumines/go-jslib/modload"
	"github.com/joeycumines/logiface"
)

// Module binds a [modload.Loader] to a [goja.Runtime]. Each Module instance
// is bound to a single runtime.
type Module struct {
	runtime  *goja.Runtime
	loader   *modload.Loader
	logger   *logiface.Logger[logiface.Event]
	registry *require.Registry
	// modules is set by Bind
	modules *require.RequireModule
	native  map[string]struct{}
	console bool
}

// New creates a new [Module] bound to the given [goja.Runtime]. Call
// [Module.Bind] to install the JS globals.
//
// New panics if runtime is nil, as this is a programming error
// (invariant violation). It returns an error if option validation
// fails.
func New(runtime *goja.Runtime, opts ...Option) (*Module, error) {
	if runtime == nil {
		panic("gojamodload: runtime must not be nil")
	}

	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("gojamodload: %w", err)
	}

	loader, err := modload.New(append([]modload.Option{
		modload.WithHost(NewHost(runtime)),
		modload.WithLogger(cfg.logger),
	}, cfg.loaderOptions...)...)
	if err != nil {
		return nil, fmt.Errorf("gojamodload: %w", err)
	}

	m := &Module{
		runtime:  runtime,
		loader:   loader,
		logger:   cfg.logger,
		registry: require.NewRegistry(),
		native:   make(map[string]struct{}, len(cfg.native)+1),
		console:  cfg.console,
	}

	for name, ldr := range cfg.native {
		m.registry.RegisterNativeModule(name, ldr)
		m.native[name] = struct{}{}
	}

	if cfg.console {
		printer := cfg.printer
		if printer == nil {
			printer = LogPrinter{Logger: cfg.logger}
		}
		m.registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(printer))
		m.native[console.ModuleName] = struct{}{}
		m.native[util.ModuleName] = struct{}{}
	}

	return m, nil
}

// Loader returns the underlying loader, e.g. to load the initial scripts.
func (m *Module) Loader() *modload.Loader { return m.loader }

// Bind installs the following globals:
//
//   - load(...names): load each module, regardless of whether it was
//     previously loaded
//   - include(...names): as load
//   - require(...names): load each module at most once, or return the
//     exports of a single native module
//   - addPath(dir), prependPath(dir), removePath(dir): modify the search path
//   - modulePaths(): a copy of the search path
//   - __FILE__: the path of the module currently loading, or undefined
//   - console: only if configured, see [WithConsole]
//
// Failures are thrown as errors named ImportFailed, with the properties
// moduleName, moduleURIs, suggestions, and trace.
func (m *Module) Bind() error {
	m.modules = m.registry.Enable(m.runtime)

	// the console module requires its dependencies via the global require,
	// so must be loaded before it is replaced
	if m.console {
		v, err := m.modules.Require(console.ModuleName)
		if err != nil {
			return fmt.Errorf("gojamodload: %w", err)
		}
		if err := m.runtime.Set("console", v); err != nil {
			return fmt.Errorf("gojamodload: %w", err)
		}
	}

	global := m.runtime.GlobalObject()
	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"load":        m.jsLoad,
		"include":     m.jsInclude,
		"require":     m.jsRequire,
		"addPath":     m.jsAddPath,
		"prependPath": m.jsPrependPath,
		"removePath":  m.jsRemovePath,
		"modulePaths": m.jsModulePaths,
	} {
		if err := global.Set(name, m.runtime.ToValue(fn)); err != nil {
			return fmt.Errorf("gojamodload: %w", err)
		}
	}

	if err := global.DefineAccessorProperty("__FILE__",
		m.runtime.ToValue(func(goja.FunctionCall) goja.Value {
			if file, ok := m.loader.CurrentFile(); ok {
				return m.runtime.ToValue(file)
			}
			return goja.Undefined()
		}),
		nil,
		goja.FLAG_FALSE,
		goja.FLAG_TRUE,
	); err != nil {
		return fmt.Errorf("gojamodload: %w", err)
	}

	m.logger.Debug().
		Int("native_modules", len(m.native)).
		Int("search_paths", m.loader.SearchPath().Len()).
		Log("bound module loader")

	return nil
}

func (m *Module) jsLoad(call goja.FunctionCall) goja.Value {
	for _, name := range m.names(call) {
		if err := m.loader.Load(name); err != nil {
			m.throw(err)
		}
	}
	return goja.Undefined()
}

func (m *Module) jsInclude(call goja.FunctionCall) goja.Value {
	if err := m.loader.Include(m.names(call)...); err != nil {
		m.throw(err)
	}
	return goja.Undefined()
}

func (m *Module) jsRequire(call goja.FunctionCall) goja.Value {
	names := m.names(call)
	if len(names) == 1 {
		if _, ok := m.native[names[0]]; ok {
			return m.requireNative(names[0])
		}
	}
	for _, name := range names {
		if _, ok := m.native[name]; ok {
			m.requireNative(name)
			continue
		}
		if err := m.loader.Require(name); err != nil {
			m.throw(err)
		}
	}
	return goja.Undefined()
}

func (m *Module) requireNative(name string) goja.Value {
	v, err := m.modules.Require(name)
	if err != nil {
		m.throw(err)
	}
	return v
}

func (m *Module) jsAddPath(call goja.FunctionCall) goja.Value {
	if err := m.loader.AddPath(m.path(call)); err != nil {
		m.throw(err)
	}
	return goja.Undefined()
}

func (m *Module) jsPrependPath(call goja.FunctionCall) goja.Value {
	if err := m.loader.PrependPath(m.path(call)); err != nil {
		m.throw(err)
	}
	return goja.Undefined()
}

func (m *Module) jsRemovePath(call goja.FunctionCall) goja.Value {
	if err := m.loader.RemovePath(m.path(call)); err != nil {
		m.throw(err)
	}
	return goja.Undefined()
}

func (m *Module) jsModulePaths(goja.FunctionCall) goja.Value {
	return m.stringArray(m.loader.SearchPath().Paths())
}

// names converts the arguments to module names, which must be strings
func (m *Module) names(call goja.FunctionCall) []string {
	names := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		if !isString(arg) {
			panic(m.runtime.NewTypeError("module name must be a string, got %s", describe(arg)))
		}
		names[i] = arg.String()
	}
	return names
}

func (m *Module) path(call goja.FunctionCall) string {
	arg := call.Argument(0)
	if !isString(arg) {
		panic(m.runtime.NewTypeError("path must be a string, got %s", describe(arg)))
	}
	return arg.String()
}

func isString(v goja.Value) bool {
	if v == nil {
		return false
	}
	_, ok := v.Export().(string)
	return ok
}

func describe(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	if t := v.ExportType(); t != nil {
		return t.String()
	}
	return "unknown"
}

// NativeModules returns the names of the registered native modules, sorted.
func (m *Module) NativeModules() []string {
	names := make([]string, 0, len(m.native))
	for name := range m.native {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
