package modload

import (
	"errors"
	"os"
	"strings"

	"github.com/joeycumines/logiface"
)

// Option configures a Loader. Options validate on construction.
type Option interface {
	apply(*config) error
}

type config struct {
	host      Host
	lookupEnv func(key string) (string, bool)
	logger    *logiface.Logger[logiface.Event]
	paths     []string
	ext       string
	home      string
	hasPaths  bool
	hasHome   bool
}

func resolveOptions(opts []Option) (*config, error) {
	cfg := &config{
		lookupEnv: os.LookupEnv,
		ext:       `.js`,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.host == nil {
		return nil, errors.New(`host is required (use WithHost)`)
	}
	if !cfg.hasHome {
		cfg.home = DefaultHome
		if v, ok := cfg.lookupEnv(`HOME`); ok && v != `` {
			cfg.home = v
		}
	}
	if !cfg.hasPaths {
		cfg.paths = DefaultPaths()
		for _, key := range [...]string{EnvLibraryPath, EnvSearchPath} {
			if v, ok := cfg.lookupEnv(key); ok {
				cfg.paths = append(cfg.paths, SplitList(v)...)
			}
		}
	}
	return cfg, nil
}

// WithHost provides the Host used to test for and execute files.
// This is required.
func WithHost(host Host) Option {
	return withHost{host: host}
}

type withHost struct {
	host Host
}

func (o withHost) apply(cfg *config) error {
	if o.host == nil {
		return errors.New(`host must not be nil`)
	}
	cfg.host = o.host
	return nil
}

// WithSearchPath replaces the default search path, including any entries
// that would have been derived from the environment.
func WithSearchPath(paths ...string) Option {
	return withSearchPath{paths: append([]string(nil), paths...)}
}

type withSearchPath struct {
	paths []string
}

func (o withSearchPath) apply(cfg *config) error {
	cfg.paths = append([]string(nil), o.paths...)
	cfg.hasPaths = true
	return nil
}

// WithLookupEnv overrides the function used to read environment variables,
// defaulting to os.LookupEnv.
func WithLookupEnv(lookupEnv func(key string) (string, bool)) Option {
	return withLookupEnv{lookupEnv: lookupEnv}
}

type withLookupEnv struct {
	lookupEnv func(key string) (string, bool)
}

func (o withLookupEnv) apply(cfg *config) error {
	if o.lookupEnv == nil {
		return errors.New(`lookupEnv must not be nil`)
	}
	cfg.lookupEnv = o.lookupEnv
	return nil
}

// WithHome overrides the home directory, which otherwise defaults to the
// HOME environment variable, or DefaultHome.
func WithHome(home string) Option {
	return withHome{home: home}
}

type withHome struct {
	home string
}

func (o withHome) apply(cfg *config) error {
	if o.home == `` {
		return errors.New(`home must not be empty`)
	}
	cfg.home = o.home
	cfg.hasHome = true
	return nil
}

// WithExtension overrides the default file extension, ".js".
func WithExtension(ext string) Option {
	return withExtension{ext: ext}
}

type withExtension struct {
	ext string
}

func (o withExtension) apply(cfg *config) error {
	if !strings.HasPrefix(o.ext, `.`) || len(o.ext) < 2 {
		return errors.New(`extension must start with '.'`)
	}
	cfg.ext = o.ext
	return nil
}

// WithLogger configures structured logging. Logging is disabled by default.
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
