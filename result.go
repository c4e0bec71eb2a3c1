package plugbind

import "fmt"

// ReturnCode is the three-valued outcome the host protocol uses in
// place of structured errors.
type ReturnCode int

const (
	// OK tells the host to continue processing the event normally.
	OK ReturnCode = 0

	// OKEat tells the host to suppress further processing. It is
	// produced by the host's own command dispatch, never by handlers
	// registered through this package; a handler returning it trips a
	// contract violation.
	OKEat ReturnCode = 1

	// Error signals failure to the host.
	Error ReturnCode = -1
)

// String returns the code's protocol name.
func (rc ReturnCode) String() string {
	switch rc {
	case OK:
		return "ok"
	case OKEat:
		return "eat"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("ReturnCode(%d)", int(rc))
	}
}

// DataKind describes how a signal's opaque payload pointer is to be
// interpreted. The set is closed by the host protocol.
type DataKind uint8

const (
	KindString DataKind = iota
	KindInt
	KindPointer
)

// ParseDataKind decodes a host-supplied type token. Anything outside
// the closed set is a decode failure, never a silent default.
func ParseDataKind(name string) (DataKind, error) {
	switch name {
	case "string":
		return KindString, nil
	case "int":
		return KindInt, nil
	case "pointer":
		return KindPointer, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// String returns the lower-case token the host's signal primitives
// expect on the wire.
func (k DataKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindPointer:
		return "pointer"
	default:
		return fmt.Sprintf("DataKind(%d)", uint8(k))
	}
}
