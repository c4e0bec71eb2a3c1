// Package host defines the contract between the plugbind core and the
// process that owns the event loop.
//
// # Overview
//
// The plugin host drives everything: it loads the plugin, calls its
// init entry point with a connection handle, invokes registered
// callbacks strictly sequentially from its own loop, and eventually
// calls the end entry point. This package captures the primitives the
// core needs from the host as a Go interface so the rest of the
// repository never touches the C ABI directly.
//
// # Implementations
//
// Two implementations exist:
//
//   - Package c adapts the real host's function-pointer table
//     (production, cgo).
//   - Package plugtest records every call in memory and lets tests
//     fire callbacks the way the host would (testing, no cgo).
//
// Both must honor the same contract: a registration primitive returns
// a non-zero Hook on success and zero only when the host itself is out
// of resources, which the core treats as unrecoverable.
//
// # Callback identifiers
//
// The host hands a registered callback an opaque data pointer on every
// invocation. The core uses that slot to carry a registry identifier:
// implementations receive the id at registration time and must deliver
// it back, unchanged, with every callback they fire.
package host
