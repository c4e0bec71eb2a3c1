package plugbind

import (
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind/cstr"
	"github.com/opd-ai/plugbind/host"
	"github.com/sirupsen/logrus"
)

// The Dispatch functions are the decode half of every trampoline.
// The fixed-signature C exports in package c (and the fake host in
// package plugtest) forward their raw arguments here; everything
// below runs in pure Go and owns no host memory once it returns.
//
// Each dispatch requires a live session and a registry entry of the
// matching kind; anything else means the host fired a callback the
// binding never registered, which is logged and answered with Error.

// dispatchEntry resolves the registry entry for a callback id.
func dispatchEntry(id uint64, kind hookKind) (*Session, *hookEntry) {
	s := Current()
	if s == nil {
		logrus.WithFields(logrus.Fields{
			"function": "dispatchEntry",
			"id":       id,
			"kind":     kind.String(),
		}).Error("Callback fired without a live host connection")
		return nil, nil
	}

	e := s.entry(id)
	if e == nil || e.kind != kind {
		logrus.WithFields(logrus.Fields{
			"function": "dispatchEntry",
			"id":       id,
			"kind":     kind.String(),
		}).Error("Callback fired for an unknown hook id")
		return nil, nil
	}
	return s, e
}

// hostBuffer converts the raw buffer pointer a trampoline receives
// into the opaque Buffer type handlers see.
func hostBuffer(p unsafe.Pointer) host.Buffer {
	return host.Buffer(p)
}

// DispatchCommand decodes a command invocation: two parallel C string
// vectors of argc elements (argument words, and rest-of-line from
// each word) become owned slices of equal length.
func DispatchCommand(id uint64, buffer unsafe.Pointer, argc int, argv, argvEOL unsafe.Pointer) ReturnCode {
	s, e := dispatchEntry(id, kindCommand)
	if s == nil {
		return Error
	}

	return s.guard("command "+e.name, func() (ReturnCode, error) {
		args, err := cstr.NewView(argv, argc).Strings()
		if err != nil {
			return Error, err
		}
		eol, err := cstr.NewView(argvEOL, argc).Strings()
		if err != nil {
			return Error, err
		}
		return e.command(e.data, hostBuffer(buffer), args, eol)
	})
}

// DispatchCommandRun decodes an intercepted command line: a single
// raw string, no splitting.
func DispatchCommandRun(id uint64, buffer unsafe.Pointer, command unsafe.Pointer) ReturnCode {
	s, e := dispatchEntry(id, kindCommandRun)
	if s == nil {
		return Error
	}

	return s.guard("command_run "+e.name, func() (ReturnCode, error) {
		return e.commandRun(e.data, hostBuffer(buffer), cstr.Decode(command))
	})
}

// DispatchModifier decodes the three raw strings of a modifier
// invocation and returns the handler's replacement text. The second
// return value reports whether the handler produced output; when it
// is false the caller must hand the host the original input text
// unchanged.
func DispatchModifier(id uint64, modifier, modifierData, text unsafe.Pointer) (string, bool) {
	s, e := dispatchEntry(id, kindModifier)
	if s == nil {
		return "", false
	}

	var out string
	rc := s.guard("modifier "+e.name, func() (ReturnCode, error) {
		res, err := e.modifier(e.data, cstr.Decode(modifier), cstr.Decode(modifierData), cstr.Decode(text))
		if err != nil {
			return Error, err
		}
		out = res
		return OK, nil
	})
	return out, rc == OK
}

// DispatchPrint decodes a displayed message: the tag vector becomes
// an owned slice, the 0/1 displayed and highlight flags become
// booleans, and the epoch-seconds timestamp becomes an absolute time.
func DispatchPrint(id uint64, buffer unsafe.Pointer, date int64, tags unsafe.Pointer, tagsCount int, displayed, highlight int, prefix, message unsafe.Pointer) ReturnCode {
	s, e := dispatchEntry(id, kindPrint)
	if s == nil {
		return Error
	}

	return s.guard("print "+e.name, func() (ReturnCode, error) {
		tagList, err := cstr.NewView(tags, tagsCount).Strings()
		if err != nil {
			return Error, err
		}
		return e.print(e.data, hostBuffer(buffer), PrintEvent{
			When:      time.Unix(date, 0),
			Tags:      tagList,
			Displayed: displayed != 0,
			Highlight: highlight != 0,
			Prefix:    cstr.Decode(prefix),
			Message:   cstr.Decode(message),
		})
	})
}

// DispatchSignal decodes a broadcast signal: the type token must name
// one of the closed set of data kinds; the payload pointer passes
// through untouched for the handler to interpret.
func DispatchSignal(id uint64, signal, typeName unsafe.Pointer, payload unsafe.Pointer) ReturnCode {
	s, e := dispatchEntry(id, kindSignal)
	if s == nil {
		return Error
	}

	return s.guard("signal "+e.name, func() (ReturnCode, error) {
		kind, err := ParseDataKind(cstr.Decode(typeName))
		if err != nil {
			return Error, err
		}
		return e.signal(e.data, cstr.Decode(signal), kind, payload)
	})
}

// DispatchTimer forwards a timer tick. The remaining-calls countdown
// crosses as a plain integer.
func DispatchTimer(id uint64, remaining int) ReturnCode {
	s, e := dispatchEntry(id, kindTimer)
	if s == nil {
		return Error
	}

	return s.guard("timer "+e.name, func() (ReturnCode, error) {
		return e.timer(e.data, remaining)
	})
}
