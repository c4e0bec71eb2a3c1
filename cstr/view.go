package cstr

import "unsafe"

// View interprets a host-supplied pointer + count pair as a bounded
// vector of raw C strings. It copies nothing until an element is
// materialized, and holds the host's pointer only for the duration of
// the trampoline call that constructed it.
type View struct {
	base  unsafe.Pointer
	count int
}

// NewView wraps base (the address of the first element of a C string
// array) and count (the host's element count). A negative count is
// clamped to zero; the host never reports one, but the view must not
// amplify a bad count into out-of-bounds reads.
func NewView(base unsafe.Pointer, count int) View {
	if count < 0 || base == nil {
		count = 0
	}
	return View{base: base, count: count}
}

// Len returns the host-reported element count.
func (v View) Len() int {
	return v.count
}

// Get decodes element i. Indexing is 1-based to match the host's
// vector convention (element 1 is the first argument word). An index
// outside [1, Len] returns a *RangeError carrying the index and the
// valid range.
func (v View) Get(i int) (string, error) {
	if i < 1 || i > v.count {
		return "", &RangeError{Index: i, Count: v.count}
	}

	elem := *(*unsafe.Pointer)(unsafe.Add(v.base, uintptr(i-1)*unsafe.Sizeof(v.base)))
	return Decode(elem), nil
}

// Strings decodes the entire vector into an owned slice whose length
// equals Len. Trampolines call this once per invocation so nothing
// downstream touches host memory.
func (v View) Strings() ([]string, error) {
	out := make([]string, v.count)
	for i := 1; i <= v.count; i++ {
		s, err := v.Get(i)
		if err != nil {
			return nil, err
		}
		out[i-1] = s
	}
	return out, nil
}
