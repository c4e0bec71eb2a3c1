package plugtest

import (
	"sync"
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind/host"
)

// Registration records one hook registration as the fake host saw it.
type Registration struct {
	Kind string
	Name string
	ID   uint64
	Hook host.Hook
}

// Signal records one outbound signal broadcast.
type Signal struct {
	Signal  string
	Kind    string
	Payload unsafe.Pointer
}

// Host is an in-memory host.API implementation. The zero value is not
// usable; create with New.
type Host struct {
	mu sync.Mutex

	// FailHooks makes every registration primitive return a zero
	// handle, simulating allocation failure inside the host.
	FailHooks bool

	nextHook  host.Hook
	meta      []host.Metadata
	regs      []Registration
	unhooked  []host.Hook
	prints    []string
	errPrints []string
	commands  []string
	signals   []Signal
}

// New creates a fake host with deterministic handle allocation
// starting at 1.
func New() *Host {
	return &Host{nextHook: 1}
}

func (h *Host) register(kind, name string, id uint64) host.Hook {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.FailHooks {
		return 0
	}
	hook := h.nextHook
	h.nextHook++
	h.regs = append(h.regs, Registration{Kind: kind, Name: name, ID: id, Hook: hook})
	return hook
}

// Describe implements host.API.
func (h *Host) Describe(meta host.Metadata) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.meta = append(h.meta, meta)
}

// HookCommand implements host.API.
func (h *Host) HookCommand(name, description, args, argsDescription, completion string, id uint64) host.Hook {
	return h.register("command", name, id)
}

// HookCommandRun implements host.API.
func (h *Host) HookCommandRun(command string, id uint64) host.Hook {
	return h.register("command_run", command, id)
}

// HookModifier implements host.API.
func (h *Host) HookModifier(modifier string, id uint64) host.Hook {
	return h.register("modifier", modifier, id)
}

// HookPrint implements host.API.
func (h *Host) HookPrint(tags, message string, stripColors bool, id uint64) host.Hook {
	return h.register("print", tags, id)
}

// HookSignal implements host.API.
func (h *Host) HookSignal(signal string, id uint64) host.Hook {
	return h.register("signal", signal, id)
}

// HookTimer implements host.API.
func (h *Host) HookTimer(interval time.Duration, alignSecond, maxCalls int, id uint64) host.Hook {
	return h.register("timer", interval.String(), id)
}

// Unhook implements host.API.
func (h *Host) Unhook(hook host.Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unhooked = append(h.unhooked, hook)
}

// Print implements host.API.
func (h *Host) Print(buffer host.Buffer, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.prints = append(h.prints, message)
}

// PrintError implements host.API.
func (h *Host) PrintError(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errPrints = append(h.errPrints, message)
}

// Command implements host.API.
func (h *Host) Command(buffer host.Buffer, command string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands = append(h.commands, command)
}

// SignalSend implements host.API.
func (h *Host) SignalSend(signal, kind string, payload unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.signals = append(h.signals, Signal{Signal: signal, Kind: kind, Payload: payload})
}

// Metadata returns every metadata push the host received.
func (h *Host) Metadata() []host.Metadata {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]host.Metadata(nil), h.meta...)
}

// Registrations returns every recorded hook registration.
func (h *Host) Registrations() []Registration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Registration(nil), h.regs...)
}

// Unhooked returns the handles cancelled so far.
func (h *Host) Unhooked() []host.Hook {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]host.Hook(nil), h.unhooked...)
}

// Prints returns the lines written to buffers.
func (h *Host) Prints() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.prints...)
}

// ErrorPrints returns the lines written to the error channel.
func (h *Host) ErrorPrints() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.errPrints...)
}

// Commands returns the command lines the plugin asked the host to run.
func (h *Host) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.commands...)
}

// Signals returns the signals the plugin broadcast.
func (h *Host) Signals() []Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Signal(nil), h.signals...)
}

// lookup finds the registry id of a hook by kind and name.
func (h *Host) lookup(kind, name string) (uint64, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.regs {
		if r.Kind == kind && r.Name == name {
			return r.ID, true
		}
	}
	return 0, false
}
