package gojamodload

import (
	"github.com/dop251/goja_nodejs/console"
	"github.com/joeycumines/logiface"
)

// LogPrinter is a [console.Printer] that writes console output as log
// events, at the informational, warning, and error levels.
type LogPrinter struct {
	Logger *logiface.Logger[logiface.Event]
}

var _ console.Printer = LogPrinter{}

func (x LogPrinter) Log(s string) {
	x.Logger.Info().
		Str("source", "console").
		Log(s)
}

func (x LogPrinter) Warn(s string) {
	x.Logger.Warning().
		Str("source", "console").
		Log(s)
}

func (x LogPrinter) Error(s string) {
	x.Logger.Err().
		Str("source", "console").
		Log(s)
}
