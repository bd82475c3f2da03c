// Package modload resolves and loads script modules, using an ordered,
// mutable search path, and an externally supplied [Host], which provides the
// primitives to test for, and execute, module files.
//
// # Resolution
//
// Module names are either absolute paths, or symbolic (relative) names. In
// both cases the default file extension (".js") is appended, if missing.
//
// Absolute names are loaded directly. Symbolic names are joined with each
// directory of the [SearchPath], in order, and the first existing candidate is
// loaded. No further candidates are tested, after a match.
//
// The default search path is the current directory, then $HOME/lib, then
// $HOME/lib/js, followed by the entries of the LD_LIBRARY_PATH and JSLIB_PATH
// environment variables. The home directory may be referenced in paths and
// names using either [HomeToken] or a leading "~".
//
// # Load vs Require
//
// [Loader.Load] always executes the resolved file. [Loader.Require] executes
// a given name at most once, per [Loader], keyed by the exact name requested.
// Failed loads are not recorded.
//
// # Failures
//
// All failures are reported as [*ImportError], which carries the requested
// name, every path that was attempted (or the single path that failed to
// execute), and the underlying cause, if any. Loading a file that is already
// being loaded (i.e. an import cycle) fails with a [*CycleError] cause.
//
// # Current file
//
// While a module is executing, [Loader.CurrentFile] reports its resolved
// absolute path. The previous value is restored once execution finishes,
// regardless of how it finishes.
package modload
