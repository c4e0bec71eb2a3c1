package c

/*
#include "plugin_host.h"
*/
import "C"

import (
	"unsafe"

	"github.com/opd-ai/plugbind"
	"github.com/opd-ai/plugbind/cstr"
	"github.com/sirupsen/logrus"
)

// This file holds the entry points and trampolines the host calls.
// The preamble of a file with //export directives may only declare,
// so every C helper definition lives in host.go's preamble instead.

// callbackID recovers the registry id from the opaque data slot the
// host hands back with every callback invocation.
func callbackID(data unsafe.Pointer) uint64 {
	return uint64(uintptr(data))
}

//export plugin_init
func plugin_init(h *C.plugin_host, argc C.int, argv **C.char) C.int {
	if h == nil {
		logrus.WithFields(logrus.Fields{
			"function": "plugin_init",
		}).Error("Host passed a nil function table")
		return C.int(plugbind.Error)
	}

	args, err := cstr.NewView(unsafe.Pointer(argv), int(argc)).Strings()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "plugin_init",
			"error":    err.Error(),
		}).Error("Failed to decode init arguments")
		return C.int(plugbind.Error)
	}

	_, rc := plugbind.Activate(&hostAPI{h: h}, args)
	return C.int(rc)
}

//export plugin_end
func plugin_end(h *C.plugin_host) C.int {
	return C.int(plugbind.Deactivate())
}

//export go_command_cb
func go_command_cb(data unsafe.Pointer, buffer unsafe.Pointer, argc C.int, argv, argvEOL **C.char) C.int {
	return C.int(plugbind.DispatchCommand(callbackID(data), buffer,
		int(argc), unsafe.Pointer(argv), unsafe.Pointer(argvEOL)))
}

//export go_command_run_cb
func go_command_run_cb(data unsafe.Pointer, buffer unsafe.Pointer, command *C.char) C.int {
	return C.int(plugbind.DispatchCommandRun(callbackID(data), buffer,
		unsafe.Pointer(command)))
}

//export go_modifier_cb
func go_modifier_cb(data unsafe.Pointer, modifier, modifierData, text *C.char) *C.char {
	out, ok := plugbind.DispatchModifier(callbackID(data),
		unsafe.Pointer(modifier), unsafe.Pointer(modifierData), unsafe.Pointer(text))
	if !ok {
		// Handler failed: the host gets the input back unchanged.
		// Ownership of the returned string transfers to the host
		// either way, so both branches allocate C memory.
		return dupCString(text)
	}
	return C.CString(out)
}

//export go_print_cb
func go_print_cb(data unsafe.Pointer, buffer unsafe.Pointer, date C.time_t, tagsCount C.int, tags **C.char, displayed, highlight C.int, prefix, message *C.char) C.int {
	return C.int(plugbind.DispatchPrint(callbackID(data), buffer,
		int64(date), unsafe.Pointer(tags), int(tagsCount),
		int(displayed), int(highlight),
		unsafe.Pointer(prefix), unsafe.Pointer(message)))
}

//export go_signal_cb
func go_signal_cb(data unsafe.Pointer, signal, typeData *C.char, signalData unsafe.Pointer) C.int {
	return C.int(plugbind.DispatchSignal(callbackID(data),
		unsafe.Pointer(signal), unsafe.Pointer(typeData), signalData))
}

//export go_timer_cb
func go_timer_cb(data unsafe.Pointer, remaining C.int) C.int {
	return C.int(plugbind.DispatchTimer(callbackID(data), int(remaining)))
}
