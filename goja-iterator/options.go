package gojaiterator

import (
	"errors"
	"fmt"
)

// DefaultGlobalName is the name of the global object installed by [Enable].
const DefaultGlobalName = "Iterator"

// DefaultTeeBranches is the number of branches tee creates, if unspecified.
const DefaultTeeBranches = 2

// MaxTeeBranches is the largest number of branches tee accepts.
const MaxTeeBranches = 1024

// Option configures module behavior. Options are immutable value
// types that validate on construction.
type Option interface {
	apply(*config) error
}

type config struct {
	globalName  string
	teeBranches int
}

func resolveOptions(opts []Option) (*config, error) {
	cfg := &config{
		globalName:  DefaultGlobalName,
		teeBranches: DefaultTeeBranches,
	}
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithGlobalName overrides the name of the global installed by [Enable].
func WithGlobalName(name string) Option {
	return withGlobalName{name: name}
}

type withGlobalName struct {
	name string
}

func (o withGlobalName) apply(cfg *config) error {
	if o.name == "" {
		return errors.New("global name must not be empty")
	}
	cfg.globalName = o.name
	return nil
}

// WithTeeBranches overrides the number of branches created by tee, when
// called without an explicit count.
func WithTeeBranches(n int) Option {
	return withTeeBranches{n: n}
}

type withTeeBranches struct {
	n int
}

func (o withTeeBranches) apply(cfg *config) error {
	if o.n < 1 || o.n > MaxTeeBranches {
		return fmt.Errorf("tee branches must be between 1 and %d", MaxTeeBranches)
	}
	cfg.teeBranches = o.n
	return nil
}
