// Package plugbind binds typed Go event handlers to an external
// plugin host that speaks a fixed C ABI.
//
// The host owns the event loop and calls into the plugin through
// fixed-signature entry points carrying NUL-terminated strings,
// pointer+count vectors and integer result codes. This package is the
// trampoline and marshaling layer in between: it decodes raw host
// arguments into typed values, invokes the registered handler, and
// maps the handler's result or failure back into the result code the
// host expects. No Go error or panic crosses the boundary; every
// handler failure is reported on the host's error channel and
// converted to the host's error code.
//
// Example:
//
//	plugbind.Register(plugbind.Metadata{
//	    Name:        "greeter",
//	    Author:      "example",
//	    Description: "Greets people who join",
//	    Version:     "1.0",
//	    License:     "MIT",
//	}, func(s *plugbind.Session, args []string) error {
//	    s.HookCommand("greet", "Greet a nick", "<nick>", "", "", nil,
//	        func(data any, buf host.Buffer, args, argsEOL []string) (plugbind.ReturnCode, error) {
//	            if len(args) < 2 {
//	                return plugbind.Error, fmt.Errorf("usage: /greet <nick>")
//	            }
//	            s.Printf(buf, "hello, %s!", args[1])
//	            return plugbind.OK, nil
//	        })
//	    return nil
//	}, func(s *plugbind.Session) error {
//	    return nil
//	})
//
// The host (through package c in production, or package plugtest in
// tests) then drives Activate, the dispatch functions, and
// Deactivate.
package plugbind
