package gojamodload

import (
	"errors"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-jslib/modload"
)

// ErrorName is the name of the JS errors thrown for import failures.
const ErrorName = "ImportFailed"

// newImportError converts an import failure into a JS error, which retains
// the Go error, for recovery by [AsImportError]
func (m *Module) newImportError(ie *modload.ImportError) *goja.Object {
	obj := m.runtime.NewGoError(ie)
	_ = obj.Set("name", ErrorName)
	_ = obj.Set("moduleName", ie.Name)
	_ = obj.Set("moduleURIs", m.stringArray(ie.Paths))
	_ = obj.Set("suggestions", m.stringArray(ie.Suggestions))
	_ = obj.Set("trace", ie.Error())
	return obj
}

// throw panics with err as a JS error, which goja rethrows
func (m *Module) throw(err error) {
	if ie, ok := AsImportError(err); ok {
		panic(m.newImportError(ie))
	}
	panic(m.runtime.NewGoError(err))
}

// AsImportError finds the first [modload.ImportError] in err's chain,
// including errors returned by a [goja.Runtime], for exceptions thrown by
// this package.
func AsImportError(err error) (*modload.ImportError, bool) {
	var ie *modload.ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	var ex *goja.Exception
	if errors.As(err, &ex) {
		if cause := exceptionCause(ex); cause != nil && errors.As(cause, &ie) {
			return ie, true
		}
	}
	return nil, false
}

// exceptionError is a JS exception that was thrown with a Go error value
type exceptionError struct {
	*goja.Exception
	cause error
}

func (x *exceptionError) Unwrap() []error { return []error{x.Exception, x.cause} }

// wrapException exposes the Go error carried by a JS exception, if any, to
// errors.Is and errors.As
func wrapException(err error) error {
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return err
	}
	if cause := exceptionCause(ex); cause != nil {
		return &exceptionError{Exception: ex, cause: cause}
	}
	return err
}

func exceptionCause(ex *goja.Exception) error {
	obj, ok := ex.Value().(*goja.Object)
	if !ok || obj == nil {
		return nil
	}
	v := obj.Get("value")
	if v == nil || goja.IsUndefined(v) {
		return nil
	}
	cause, _ := v.Export().(error)
	return cause
}

func (m *Module) stringArray(values []string) *goja.Object {
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	return m.runtime.NewArray(items...)
}
