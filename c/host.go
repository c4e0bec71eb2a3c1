package c

/*
#include <stdlib.h>
#include <string.h>
#include "plugin_host.h"

// Go cannot invoke C function pointers directly; these helpers bounce
// each outbound primitive through the host's table, binding the
// matching exported trampoline at registration time.

static void *helper_hook_command(plugin_host *h, const char *name,
		const char *description, const char *args,
		const char *args_description, const char *completion, void *data) {
	return h->hook_command(h, name, description, args, args_description,
		completion, go_command_cb, data);
}

static void *helper_hook_command_run(plugin_host *h, const char *command,
		void *data) {
	return h->hook_command_run(h, command, go_command_run_cb, data);
}

static void *helper_hook_modifier(plugin_host *h, const char *modifier,
		void *data) {
	return h->hook_modifier(h, modifier, go_modifier_cb, data);
}

static void *helper_hook_print(plugin_host *h, const char *tags,
		const char *message, int strip_colors, void *data) {
	return h->hook_print(h, tags, message, strip_colors, go_print_cb, data);
}

static void *helper_hook_signal(plugin_host *h, const char *signal,
		void *data) {
	return h->hook_signal(h, signal, go_signal_cb, data);
}

static void *helper_hook_timer(plugin_host *h, long interval_ms,
		int align_second, int max_calls, void *data) {
	return h->hook_timer(h, interval_ms, align_second, max_calls,
		go_timer_cb, data);
}

static void helper_unhook(plugin_host *h, void *hook) {
	h->unhook(h, hook);
}

static void helper_print_buffer(plugin_host *h, void *buffer,
		const char *message) {
	h->print_buffer(h, buffer, message);
}

static void helper_print_error(plugin_host *h, const char *message) {
	h->print_error(h, message);
}

static void helper_command(plugin_host *h, void *buffer,
		const char *command) {
	h->command(h, buffer, command);
}

static void helper_signal_send(plugin_host *h, const char *signal,
		const char *type_data, void *signal_data) {
	h->signal_send(h, signal, type_data, signal_data);
}

static void helper_set_info(plugin_host *h, const char *name,
		const char *author, const char *description, const char *version,
		const char *license) {
	h->set_info(h, name, author, description, version, license);
}
*/
import "C"

import (
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind/cstr"
	"github.com/opd-ai/plugbind/host"
)

// hostAPI adapts the host's function-pointer table to host.API.
// Exactly one instance exists per activation; it is created by
// plugin_init and dies with the session.
type hostAPI struct {
	h *C.plugin_host
}

// cArg encodes one outbound string argument. The allocation is Go
// memory pinned for the duration of the host call; the host copies
// string arguments before returning, so nothing is retained. Callers
// defer the returned release func so the pin is dropped on every exit
// path, including a failing host call.
func cArg(s string) (*C.char, func()) {
	raw := cstr.Encode(s)
	return (*C.char)(raw.Ptr()), raw.Free
}

// idPtr smuggles the registry id through the host's opaque data slot.
func idPtr(id uint64) unsafe.Pointer {
	return unsafe.Pointer(uintptr(id))
}

// dupCString copies a host-owned string into fresh C memory. Used by
// the modifier trampoline's fallback path, where ownership of the
// returned string transfers to the host.
func dupCString(s *C.char) *C.char {
	if s == nil {
		return nil
	}
	return C.strdup(s)
}

func (a *hostAPI) Describe(meta host.Metadata) {
	cName, free := cArg(meta.Name)
	defer free()
	cAuthor, free := cArg(meta.Author)
	defer free()
	cDescription, free := cArg(meta.Description)
	defer free()
	cVersion, free := cArg(meta.Version)
	defer free()
	cLicense, free := cArg(meta.License)
	defer free()

	C.helper_set_info(a.h, cName, cAuthor, cDescription, cVersion, cLicense)
}

func (a *hostAPI) HookCommand(name, description, args, argsDescription, completion string, id uint64) host.Hook {
	cName, free := cArg(name)
	defer free()
	cDescription, free := cArg(description)
	defer free()
	cArgs, free := cArg(args)
	defer free()
	cArgsDescription, free := cArg(argsDescription)
	defer free()
	cCompletion, free := cArg(completion)
	defer free()

	return host.Hook(uintptr(C.helper_hook_command(a.h, cName, cDescription,
		cArgs, cArgsDescription, cCompletion, idPtr(id))))
}

func (a *hostAPI) HookCommandRun(command string, id uint64) host.Hook {
	cCommand, free := cArg(command)
	defer free()

	return host.Hook(uintptr(C.helper_hook_command_run(a.h, cCommand, idPtr(id))))
}

func (a *hostAPI) HookModifier(modifier string, id uint64) host.Hook {
	cModifier, free := cArg(modifier)
	defer free()

	return host.Hook(uintptr(C.helper_hook_modifier(a.h, cModifier, idPtr(id))))
}

func (a *hostAPI) HookPrint(tags, message string, stripColors bool, id uint64) host.Hook {
	cTags, free := cArg(tags)
	defer free()
	cMessage, free := cArg(message)
	defer free()

	strip := C.int(0)
	if stripColors {
		strip = 1
	}
	return host.Hook(uintptr(C.helper_hook_print(a.h, cTags, cMessage, strip, idPtr(id))))
}

func (a *hostAPI) HookSignal(signal string, id uint64) host.Hook {
	cSignal, free := cArg(signal)
	defer free()

	return host.Hook(uintptr(C.helper_hook_signal(a.h, cSignal, idPtr(id))))
}

func (a *hostAPI) HookTimer(interval time.Duration, alignSecond, maxCalls int, id uint64) host.Hook {
	return host.Hook(uintptr(C.helper_hook_timer(a.h,
		C.long(interval.Milliseconds()), C.int(alignSecond), C.int(maxCalls),
		idPtr(id))))
}

func (a *hostAPI) Unhook(h host.Hook) {
	C.helper_unhook(a.h, unsafe.Pointer(uintptr(h)))
}

func (a *hostAPI) Print(buffer host.Buffer, message string) {
	cMessage, free := cArg(message)
	defer free()

	C.helper_print_buffer(a.h, unsafe.Pointer(buffer), cMessage)
}

func (a *hostAPI) PrintError(message string) {
	cMessage, free := cArg(message)
	defer free()

	C.helper_print_error(a.h, cMessage)
}

func (a *hostAPI) Command(buffer host.Buffer, command string) {
	cCommand, free := cArg(command)
	defer free()

	C.helper_command(a.h, unsafe.Pointer(buffer), cCommand)
}

func (a *hostAPI) SignalSend(signal, kind string, payload unsafe.Pointer) {
	cSignal, free := cArg(signal)
	defer free()
	cKind, free := cArg(kind)
	defer free()

	C.helper_signal_send(a.h, cSignal, cKind, payload)
}
