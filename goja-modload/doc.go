// Package gojamodload provides module loading for the Goja JavaScript engine,
// using [github.com/joeycumines/go-jslib/modload] to resolve module names
// against a search path, and executing module files as scripts, in the
// global scope.
//
// # Usage
//
//	rt := goja.New()
//	m, err := gojamodload.New(rt,
//		gojamodload.WithLoaderOptions(modload.WithSearchPath("./lib")),
//		gojamodload.WithNativeModule("iterator", gojaiterator.Require()),
//		gojamodload.WithConsole(nil),
//	)
//	if err != nil {
//		return err
//	}
//	if err := m.Bind(); err != nil {
//		return err
//	}
//	if err := m.Loader().Load("main"); err != nil {
//		if ie, ok := gojamodload.AsImportError(err); ok {
//			fmt.Println(ie.Error())
//		}
//	}
//
// From JavaScript:
//
//	require('strings', 'arrays'); // lib/strings.js, lib/arrays.js, once
//	const it = require('iterator'); // native module exports
//	try {
//		load('missing');
//	} catch (e) {
//		e.name; // "ImportFailed"
//		e.moduleURIs; // every path attempted
//	}
package gojamodload
