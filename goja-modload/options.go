package gojamodload

import (
	"errors"

	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/joeycumines/go-jslib/modload"
	"github.com/joeycumines/logiface"
)

// Option configures module behavior. Options are immutable value
// types that validate on construction.
type Option interface {
	apply(*config) error
}

type config struct {
	logger        *logiface.Logger[logiface.Event]
	printer       console.Printer
	native        map[string]require.ModuleLoader
	loaderOptions []modload.Option
	console       bool
}

func resolveOptions(opts []Option) (*config, error) {
	cfg := &config{native: make(map[string]require.ModuleLoader)}
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLoaderOptions configures the underlying [modload.Loader], e.g. the
// search path. The host is provided by this package, by default.
func WithLoaderOptions(opts ...modload.Option) Option {
	return withLoaderOptions{opts: opts}
}

type withLoaderOptions struct {
	opts []modload.Option
}

func (o withLoaderOptions) apply(cfg *config) error {
	cfg.loaderOptions = append(cfg.loaderOptions, o.opts...)
	return nil
}

// WithNativeModule registers a Go-implemented module, which require()
// resolves in preference to module files.
func WithNativeModule(name string, loader require.ModuleLoader) Option {
	return withNativeModule{name: name, loader: loader}
}

type withNativeModule struct {
	loader require.ModuleLoader
	name   string
}

func (o withNativeModule) apply(cfg *config) error {
	if o.name == "" {
		return errors.New("native module name must not be empty")
	}
	if o.loader == nil {
		return errors.New("native module loader must not be nil")
	}
	cfg.native[o.name] = o.loader
	return nil
}

// WithLogger configures structured logging, for both this package and the
// underlying loader.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return withLogger{logger: logger}
}

type withLogger struct {
	logger *logiface.Logger[logiface.Event]
}

func (o withLogger) apply(cfg *config) error {
	cfg.logger = o.logger
	return nil
}

// WithConsole installs the console global, and the console native module,
// writing via printer. A nil printer writes to the logger, see [LogPrinter].
func WithConsole(printer console.Printer) Option {
	return withConsole{printer: printer}
}

type withConsole struct {
	printer console.Printer
}

func (o withConsole) apply(cfg *config) error {
	cfg.console = true
	cfg.printer = o.printer
	return nil
}
