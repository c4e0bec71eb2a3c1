// Package plugtest provides an in-memory fake plugin host for
// deterministic testing of plugbind-based plugins.
//
// # Overview
//
// This package implements the host.API contract entirely in memory.
// Registrations, prints, commands, unhooks and sent signals are
// recorded for verification, and the Fire functions drive the
// dispatch trampolines exactly the way the real host would: arguments
// are laid out as NUL-terminated C string vectors first, so a test
// exercises the full decode path, not a shortcut around it.
//
// # Simulation vs real implementation
//
// Two implementations of host.API exist:
//
//   - Simulation (this package): every host primitive is recorded in
//     memory. Used for unit and integration testing.
//
//   - Real (package c): primitives forward through the host's
//     function-pointer table via cgo. Used when the plugin is loaded
//     by an actual host process.
//
// # Usage
//
//	plugbind.Register(meta, initFn, endFn)
//
//	h := plugtest.New()
//	_, rc := plugbind.Activate(h, nil)
//	if rc != plugbind.OK {
//	    t.Fatal("activation failed")
//	}
//
//	rc = h.FireCommand("greet", "greet", "alice")
//	if rc != plugbind.OK {
//	    t.Fatalf("command failed: %v", h.ErrorPrints())
//	}
//	if got := h.Prints(); len(got) != 1 || got[0] != "hello, alice!" {
//	    t.Errorf("unexpected output %v", got)
//	}
//
//	plugbind.Deactivate()
//
// # Failure injection
//
// Setting FailHooks makes every registration primitive return a zero
// handle, which lets tests verify that the binding treats host-side
// allocation failure as fatal.
package plugtest
