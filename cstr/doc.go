// Package cstr converts between the plugin host's raw C string
// representation and Go strings, without depending on cgo.
//
// # Overview
//
// The host delivers text as NUL-terminated byte sequences addressed by
// raw pointers, and argument or tag vectors as a base pointer plus a
// side-band element count. This package provides the three primitives
// every trampoline needs:
//
//   - Decode: raw pointer -> Go string (bytes up to the terminator)
//   - Encode: Go string -> pinned NUL-terminated allocation (Raw)
//   - View:   pointer + count -> bounds-checked string vector
//
// # Ownership
//
// Decode copies; the resulting string holds no reference to host
// memory, so it may outlive the callback that produced it. Encode
// allocates on the Go heap and pins the allocation so the address
// stays stable while the host reads it. The allocation is scoped to a
// single outbound host call: pair every Encode with a deferred Free.
//
//	raw := cstr.Encode(name)
//	defer raw.Free()
//	hostCall(raw.Ptr())
//
// The host must not retain the pointer past the call. For return
// values whose ownership transfers to the host (the modifier
// trampoline's output), use C memory instead; see package c.
//
// # Indexing
//
// View.Get is 1-indexed, matching the host's own vector convention
// where element 1 is the first argument word. Out-of-range access
// returns a *RangeError naming the requested index and the valid
// range; the count comes from the host, so a violation here is a
// host-contract problem, never user input.
//
// # Splitting
//
// Split implements the host protocol's delimited-field convention:
// trailing CR/LF is trimmed first, a positive part count is exact
// (fewer separators than required is an error, not a silent short
// result), and the final part carries the remainder verbatim, so
// splitting "nick!user@host" on "!" into 2 parts yields "nick" and
// "user@host".
package cstr
