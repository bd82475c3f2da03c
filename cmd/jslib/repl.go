package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-jslib/internal/config"
	prompt "github.com/joeycumines/go-prompt"
	pstrings "github.com/joeycumines/go-prompt/strings"
)

const exitCommand = ".exit"

func startREPL(s *session, cfg config.REPLConfig) {
	s.logger.Debug().
		Str("prefix", cfg.Prefix).
		Log("starting prompt")

	globals := &globalNames{}
	globals.refresh(s.rt)

	p := prompt.New(
		func(in string) {
			s.evaluate(in)
			globals.refresh(s.rt)
		},
		prompt.WithPrefix(cfg.Prefix),
		prompt.WithTitle("jslib"),
		prompt.WithCompleter(globals.complete),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return breakline && strings.TrimSpace(in) == exitCommand
		}),
	)

	if code := p.RunNoExit(); code > 0 {
		s.logger.Warning().
			Int("code", code).
			Log("prompt exited abnormally")
	}
}

// evaluate runs one line of input, writing the result, or the error
func (s *session) evaluate(in string) {
	in = strings.TrimSpace(in)
	if in == "" || in == exitCommand {
		return
	}
	v, err := s.rt.RunString(in)
	if err != nil {
		s.report(err)
		return
	}
	if v == nil || goja.IsUndefined(v) {
		return
	}
	_, _ = fmt.Fprintln(s.stdout, s.format(v))
}

// format renders plain objects and arrays as JSON, and everything else as
// the JS string conversion
func (s *session) format(v goja.Value) string {
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.String()
	}
	switch obj.ClassName() {
	case "Object", "Array":
	default:
		return v.String()
	}
	stringify, ok := goja.AssertFunction(s.rt.Get("JSON").ToObject(s.rt).Get("stringify"))
	if !ok {
		return v.String()
	}
	out, err := stringify(goja.Undefined(), v)
	if err != nil || goja.IsUndefined(out) {
		return v.String()
	}
	return out.String()
}

// globalNames snapshots the global object's keys, for completion, which
// must not touch the runtime
type globalNames struct {
	mu    sync.Mutex
	names []string
}

func (x *globalNames) refresh(rt *goja.Runtime) {
	names := rt.GlobalObject().Keys()
	sort.Strings(names)
	x.mu.Lock()
	x.names = names
	x.mu.Unlock()
}

func (x *globalNames) complete(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
	x.mu.Lock()
	suggestions := make([]prompt.Suggest, len(x.names))
	for i, name := range x.names {
		suggestions[i] = prompt.Suggest{Text: name}
	}
	x.mu.Unlock()

	endIndex := in.CurrentRuneIndex()
	w := in.GetWordBeforeCursor()
	startIndex := endIndex - pstrings.RuneCountInString(w)

	if w == "" {
		return nil, startIndex, endIndex
	}
	return prompt.FilterHasPrefix(suggestions, w, false), startIndex, endIndex
}
