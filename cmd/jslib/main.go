// Command jslib runs JavaScript files, with the module loader and sequence
// library installed, optionally followed by an interactive prompt.
//
// Usage:
//
//	jslib [flags] [script...]
//
// Scripts are loaded in order, using the module search path, unless they
// name an existing file. The prompt starts if no scripts are given, or if
// --repl is set. See config.Flags for the flags, and the config file format.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dop251/goja"
	gojaiterator "github.com/joeycumines/go-jslib/goja-iterator"
	gojamodload "github.com/joeycumines/go-jslib/goja-modload"
	"github.com/joeycumines/go-jslib/internal/config"
	"github.com/joeycumines/go-jslib/modload"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, startREPL))
}

// session is a configured runtime, ready to load scripts
type session struct {
	rt     *goja.Runtime
	mod    *gojamodload.Module
	logger *logiface.Logger[logiface.Event]
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer, repl func(*session, config.REPLConfig)) int {
	flags := config.Flags()
	flags.SetOutput(stderr)
	flags.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: jslib [flags] [script...]\n\n%s", flags.FlagUsages())
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "jslib: %v\n", err)
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "jslib: %v\n", err)
		return 2
	}

	s, err := newSession(cfg, stdout, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "jslib: %v\n", err)
		return 1
	}

	if err := s.mod.Loader().Require(cfg.Loader.Require...); err != nil {
		s.report(err)
		return 1
	}

	scripts := flags.Args()
	for _, script := range scripts {
		if err := s.mod.Loader().Load(resolveScript(script)); err != nil {
			s.report(err)
			return 1
		}
	}

	if len(scripts) == 0 || cfg.REPL.Enabled {
		repl(s, cfg.REPL)
	}

	return 0
}

func newSession(cfg config.Config, stdout, stderr io.Writer) (*session, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(stderr)),
		stumpy.L.WithLevel(level),
	).Logger()

	rt := goja.New()

	if _, err := gojaiterator.Enable(rt); err != nil {
		return nil, err
	}

	mod, err := gojamodload.New(rt,
		gojamodload.WithLogger(logger),
		gojamodload.WithLoaderOptions(modload.WithExtension(cfg.Loader.Extension)),
		gojamodload.WithNativeModule("iterator", gojaiterator.Require()),
		gojamodload.WithConsole(printer{stdout: stdout, stderr: stderr}),
	)
	if err != nil {
		return nil, err
	}
	if err := mod.Bind(); err != nil {
		return nil, err
	}

	// the first include has the highest priority
	for i := len(cfg.Loader.Include) - 1; i >= 0; i-- {
		if err := mod.Loader().PrependPath(cfg.Loader.Include[i]); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Str("search_path", strings.Join(mod.Loader().SearchPath().Paths(), string(os.PathListSeparator))).
		Log("session ready")

	return &session{
		rt:     rt,
		mod:    mod,
		logger: logger,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// report writes err, including the full trace of import failures
func (s *session) report(err error) {
	if ie, ok := gojamodload.AsImportError(err); ok {
		_, _ = fmt.Fprintf(s.stderr, "%s: %s\n", gojamodload.ErrorName, ie.Error())
		return
	}
	_, _ = fmt.Fprintln(s.stderr, err)
}

// resolveScript uses the absolute path of existing files, so they are not
// subject to the search path
func resolveScript(name string) string {
	if info, err := os.Stat(name); err == nil && info.Mode().IsRegular() {
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
	}
	return name
}

// printer writes console output, unadorned
type printer struct {
	stdout io.Writer
	stderr io.Writer
}

func (x printer) Log(s string)   { _, _ = fmt.Fprintln(x.stdout, s) }
func (x printer) Warn(s string)  { _, _ = fmt.Fprintln(x.stderr, s) }
func (x printer) Error(s string) { _, _ = fmt.Fprintln(x.stderr, s) }
