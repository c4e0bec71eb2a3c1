// Package c implements the host-facing side of the plugin boundary,
// bridging the pure-Go binding layer to a C plugin host.
//
// # Overview
//
// The c package owns every cgo crossing. Inbound, it exports the
// entry points the host loads (plugin_init, plugin_end) and the
// fixed-signature trampolines (go_command_cb, go_print_cb, ...) that
// the host invokes when a hooked event fires; each trampoline decodes
// nothing itself and forwards the raw pointers to the dispatch layer.
// Outbound, hostAPI adapts the function-pointer table the host hands
// to plugin_init into the host.API interface the session layer calls.
//
// # Build Instructions
//
// Plugins link this package and build as a C shared library:
//
//	go build -buildmode=c-shared -o myplugin.so ./examples/greeter/
//
// The host dlopens the result, resolves plugin_init and plugin_end,
// and calls plugin_init with its plugin_host table.
//
// # Memory Ownership
//
// String arguments cross the boundary by copy. Outbound strings are
// Go memory pinned for the duration of the host call; the host copies
// before returning. Inbound strings are host memory valid only for
// the duration of the callback; the dispatch layer copies them into
// Go strings before any handler runs. The single exception is the
// modifier result, which is allocated with C memory and ownership
// transfers to the host.
package c
