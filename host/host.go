package host

import (
	"time"
	"unsafe"
)

// Hook is the opaque token the host returns for a registered callback.
// Zero means registration failed inside the host; every successful
// registration yields a non-zero value.
type Hook uintptr

// Buffer is an opaque reference to a host display buffer. A nil
// Buffer addresses the host's core buffer.
type Buffer unsafe.Pointer

// Metadata is the plugin description pushed to the host once during
// initialization.
type Metadata struct {
	Name        string
	Author      string
	Description string
	Version     string
	License     string
}

// API is the set of host primitives the core requires. All methods
// are synchronous and must only be called from host callback context
// (the host's event loop is single-threaded with respect to the
// plugin).
//
// Every registration method takes the registry id the host must hand
// back verbatim when it fires the callback.
type API interface {
	// Describe pushes the plugin metadata to the host. Called exactly
	// once, during initialization.
	Describe(meta Metadata)

	// HookCommand registers a named command with its help strings and
	// completion template.
	HookCommand(name, description, args, argsDescription, completion string, id uint64) Hook

	// HookCommandRun intercepts execution of a command line matching
	// the given pattern.
	HookCommandRun(command string, id uint64) Hook

	// HookModifier registers a text-rewriting callback for the named
	// modifier.
	HookModifier(modifier string, id uint64) Hook

	// HookPrint registers a callback for displayed messages matching
	// the given comma-separated tags and message filter.
	HookPrint(tags, message string, stripColors bool, id uint64) Hook

	// HookSignal registers a callback for the named signal.
	HookSignal(signal string, id uint64) Hook

	// HookTimer schedules a recurring callback. maxCalls of zero
	// repeats forever; alignSecond of zero disables alignment.
	HookTimer(interval time.Duration, alignSecond, maxCalls int, id uint64) Hook

	// Unhook cancels any hook previously returned by this API.
	Unhook(Hook)

	// Print writes a line to the given buffer (nil for the host's
	// core buffer).
	Print(buffer Buffer, message string)

	// PrintError writes an error-severity line to the host's core
	// buffer. This is the user-visible error channel every guarded
	// failure is reported on.
	PrintError(message string)

	// Command has the host execute a command line in the context of
	// the given buffer.
	Command(buffer Buffer, command string)

	// SignalSend broadcasts a signal. kind must be one of the host
	// tokens "string", "int" or "pointer"; the payload is forwarded
	// untouched.
	SignalSend(signal, kind string, payload unsafe.Pointer)
}
