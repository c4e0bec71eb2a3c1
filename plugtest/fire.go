package plugtest

import (
	"runtime"
	"strings"
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind"
	"github.com/opd-ai/plugbind/cstr"
)

// The Fire functions impersonate the host's event loop: they lay the
// arguments out in C form (NUL-terminated strings, pointer+count
// vectors) and call the same dispatch trampolines the real host's
// callbacks do, so tests cover the whole decode path.

// rawStrings builds a C-style string vector. The returned release
// func unpins everything; call it after dispatch returns.
func rawStrings(ss []string) (unsafe.Pointer, int, func()) {
	raws := make([]*cstr.Raw, len(ss))
	ptrs := make([]unsafe.Pointer, len(ss))
	for i, s := range ss {
		raws[i] = cstr.Encode(s)
		ptrs[i] = raws[i].Ptr()
	}

	var pin runtime.Pinner
	var base unsafe.Pointer
	if len(ptrs) > 0 {
		pin.Pin(&ptrs[0])
		base = unsafe.Pointer(&ptrs[0])
	}

	release := func() {
		pin.Unpin()
		for _, r := range raws {
			r.Free()
		}
		runtime.KeepAlive(ptrs)
	}
	return base, len(ptrs), release
}

// FireCommand invokes the command hook registered under name with the
// given argument words. The rest-of-line vector is derived by joining
// the words the way the host does.
func (h *Host) FireCommand(name string, words ...string) plugbind.ReturnCode {
	id, ok := h.lookup("command", name)
	if !ok {
		return plugbind.Error
	}

	eol := make([]string, len(words))
	for i := range words {
		eol[i] = strings.Join(words[i:], " ")
	}

	argv, argc, releaseArgv := rawStrings(words)
	defer releaseArgv()
	argvEOL, _, releaseEOL := rawStrings(eol)
	defer releaseEOL()

	return plugbind.DispatchCommand(id, nil, argc, argv, argvEOL)
}

// FireCommandRun invokes the command-run hook registered under
// pattern with the full command line.
func (h *Host) FireCommandRun(pattern, command string) plugbind.ReturnCode {
	id, ok := h.lookup("command_run", pattern)
	if !ok {
		return plugbind.Error
	}

	raw := cstr.Encode(command)
	defer raw.Free()
	return plugbind.DispatchCommandRun(id, nil, raw.Ptr())
}

// FireModifier invokes the modifier hook registered under name. It
// applies the host's fallback rule: when the handler fails, the
// original text comes back unchanged.
func (h *Host) FireModifier(name, modifierData, text string) string {
	id, ok := h.lookup("modifier", name)
	if !ok {
		return text
	}

	rawName := cstr.Encode(name)
	defer rawName.Free()
	rawData := cstr.Encode(modifierData)
	defer rawData.Free()
	rawText := cstr.Encode(text)
	defer rawText.Free()

	out, ok := plugbind.DispatchModifier(id, rawName.Ptr(), rawData.Ptr(), rawText.Ptr())
	if !ok {
		return text
	}
	return out
}

// FirePrint invokes the print hook registered under tagFilter with a
// displayed message.
func (h *Host) FirePrint(tagFilter string, when time.Time, tags []string, displayed, highlight bool, prefix, message string) plugbind.ReturnCode {
	id, ok := h.lookup("print", tagFilter)
	if !ok {
		return plugbind.Error
	}

	tagVec, tagCount, releaseTags := rawStrings(tags)
	defer releaseTags()
	rawPrefix := cstr.Encode(prefix)
	defer rawPrefix.Free()
	rawMessage := cstr.Encode(message)
	defer rawMessage.Free()

	return plugbind.DispatchPrint(id, nil, when.Unix(), tagVec, tagCount,
		boolInt(displayed), boolInt(highlight), rawPrefix.Ptr(), rawMessage.Ptr())
}

// FireSignal invokes the signal hook registered under name. kind is
// the raw host token ("string", "int", "pointer" — or anything else,
// to exercise decode failures).
func (h *Host) FireSignal(name, signal, kind string, payload unsafe.Pointer) plugbind.ReturnCode {
	id, ok := h.lookup("signal", name)
	if !ok {
		return plugbind.Error
	}

	rawSignal := cstr.Encode(signal)
	defer rawSignal.Free()
	rawKind := cstr.Encode(kind)
	defer rawKind.Free()

	return plugbind.DispatchSignal(id, rawSignal.Ptr(), rawKind.Ptr(), payload)
}

// FireTimer invokes the timer hook registered for the given interval
// with the remaining-calls countdown.
func (h *Host) FireTimer(interval time.Duration, remaining int) plugbind.ReturnCode {
	id, ok := h.lookup("timer", interval.String())
	if !ok {
		return plugbind.Error
	}
	return plugbind.DispatchTimer(id, remaining)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
