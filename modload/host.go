package modload

type (
	// Host provides the primitives used by a Loader to interact with the
	// underlying runtime and filesystem.
	Host interface {
		// Exists reports whether path is a loadable file.
		Exists(path string) bool
		// Exec executes the file at path, e.g. within the global scope of a
		// script runtime.
		Exec(path string) error
	}

	// Lister may be implemented by a Host, to enable suggestions for
	// modules that could not be found.
	Lister interface {
		// List returns the names of the entries of dir.
		List(dir string) ([]string, error)
	}

	// HostFuncs implements Host using functions.
	HostFuncs struct {
		ExistsFunc func(path string) bool
		ExecFunc   func(path string) error
	}
)

var _ Host = HostFuncs{}

// Exists calls ExistsFunc, returning false if it is nil.
func (x HostFuncs) Exists(path string) bool {
	return x.ExistsFunc != nil && x.ExistsFunc(path)
}

// Exec calls ExecFunc, if it is non-nil.
func (x HostFuncs) Exec(path string) error {
	if x.ExecFunc == nil {
		return nil
	}
	return x.ExecFunc(path)
}
