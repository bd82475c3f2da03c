package modload

import (
	"errors"
	"strings"
)

type (
	// ImportError indicates a module could not be resolved, or failed to
	// execute.
	ImportError struct {
		// Cause is the underlying error, if any, e.g. an exception thrown
		// while executing the module. It is nil if no candidate existed.
		Cause error

		// Name is the module name, as requested.
		Name string

		// Paths are the (absolute) paths attempted, in order. If the module was
		// found, but failed to execute, it will contain only the found path.
		Paths []string

		// Suggestions may contain similarly named modules, found within the
		// search path, if the host supports listing directories.
		Suggestions []string
	}

	// CycleError is the Cause of an ImportError, for a module that was loaded
	// while it was already being loaded.
	CycleError struct {
		// Chain is the sequence of files being loaded, ending with the file
		// that was re-entered.
		Chain []string
	}
)

var (
	// ErrImportFailed matches any *ImportError, via errors.Is.
	ErrImportFailed = errors.New(`modload: import failed`)
)

func (x *ImportError) Error() string {
	var b strings.Builder
	b.WriteString(`failed to import module '`)
	b.WriteString(x.Name)
	b.WriteString(`'`)
	if len(x.Paths) != 0 {
		b.WriteString(` from:`)
		for i, p := range x.Paths {
			if i != 0 {
				b.WriteByte(',')
			}
			b.WriteString("\n  ")
			b.WriteString(p)
		}
	}
	if len(x.Suggestions) != 0 {
		b.WriteString("\ndid you mean: ")
		b.WriteString(strings.Join(x.Suggestions, `, `))
	}
	if x.Cause != nil {
		b.WriteString("\n\nbecause:\n")
		b.WriteString(indent(x.Cause.Error(), `    `))
	}
	return b.String()
}

// Unwrap returns the Cause.
func (x *ImportError) Unwrap() error { return x.Cause }

// Is matches ErrImportFailed.
func (x *ImportError) Is(target error) bool { return target == ErrImportFailed }

func (x *CycleError) Error() string {
	return `import cycle detected: ` + strings.Join(x.Chain, ` -> `)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != `` {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
