package cstr

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"
)

// Decode reads a NUL-terminated byte sequence and returns its contents
// as a Go string, excluding the terminator. The bytes are copied; the
// result holds no reference to the memory behind p.
//
// A nil pointer decodes to the empty string. The host guarantees
// non-nil pointers for every argument this package is used on, so a
// nil here is already a contract breach; the empty string is the only
// total answer that does not take the process down with the host's
// mistake.
func Decode(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}

	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// Raw is a NUL-terminated byte allocation whose address is pinned for
// the host's benefit. It is scoped to a single outbound host call:
// create with Encode, pass Ptr to the host, and release with Free on
// every exit path (typically via defer).
type Raw struct {
	buf []byte
	pin runtime.Pinner
}

// Encode allocates a NUL-terminated copy of s and pins it so the
// address stays stable while the host reads it. The caller owns the
// allocation and must call Free exactly once.
func Encode(s string) *Raw {
	r := &Raw{buf: make([]byte, len(s)+1)}
	copy(r.buf, s)
	r.pin.Pin(&r.buf[0])
	return r
}

// Ptr returns the host-visible address of the first byte.
func (r *Raw) Ptr() unsafe.Pointer {
	return unsafe.Pointer(&r.buf[0])
}

// Free unpins the allocation. The pointer must not be used afterwards.
func (r *Raw) Free() {
	r.pin.Unpin()
}

// Split divides s into fields on sep, after trimming trailing CR/LF
// (the host terminates protocol lines with them and they are never
// part of a field).
//
// n == 0 splits on every occurrence of sep. n > 0 demands exactly n
// parts: the first n-1 separators delimit, the final part is the
// remainder verbatim and may itself contain sep. Fewer separators
// than n requires is an ErrTooFewFields error rather than a short
// result, because every call site knows the arity it expects and a
// silent truncation would shift fields.
func Split(s, sep string, n int) ([]string, error) {
	if sep == "" {
		return nil, ErrEmptySeparator
	}

	s = strings.TrimRight(s, "\r\n")

	if n == 0 {
		return strings.Split(s, sep), nil
	}
	if n < 0 {
		return nil, fmt.Errorf("negative part count %d", n)
	}

	parts := strings.SplitN(s, sep, n)
	if len(parts) < n {
		return nil, fmt.Errorf("%w: want %d parts, separator %q occurs %d time(s) in %q",
			ErrTooFewFields, n, sep, strings.Count(s, sep), s)
	}
	return parts, nil
}
