package plugbind

import (
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind/host"
	"github.com/sirupsen/logrus"
)

// hookKind discriminates registry entries by event category.
type hookKind uint8

const (
	kindCommand hookKind = iota
	kindCommandRun
	kindModifier
	kindPrint
	kindSignal
	kindTimer
)

func (k hookKind) String() string {
	switch k {
	case kindCommand:
		return "command"
	case kindCommandRun:
		return "command_run"
	case kindModifier:
		return "modifier"
	case kindPrint:
		return "print"
	case kindSignal:
		return "signal"
	case kindTimer:
		return "timer"
	default:
		return "invalid"
	}
}

// hookEntry is one registered handler. Exactly one of the handler
// fields is set, matching kind.
type hookEntry struct {
	kind hookKind
	name string
	data any
	raw  host.Hook

	command    CommandHandler
	commandRun CommandRunHandler
	modifier   ModifierHandler
	print      PrintHandler
	signal     SignalHandler
	timer      TimerHandler
}

// Session is the live connection to the host. There is at most one
// per process; it is created by Activate and torn down by Deactivate
// or by a failed initialization.
type Session struct {
	api host.API

	mu     sync.Mutex
	hooks  map[uint64]*hookEntry
	nextID uint64
}

func newSession(api host.API) *Session {
	return &Session{
		api:    api,
		hooks:  make(map[uint64]*hookEntry),
		nextID: 1,
	}
}

// addEntry stores e and returns its registry id. The id travels to
// the host as the callback's opaque data slot and comes back with
// every invocation.
func (s *Session) addEntry(e *hookEntry) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.hooks[id] = e
	return id
}

func (s *Session) entry(id uint64) *hookEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hooks[id]
}

func (s *Session) removeEntry(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hooks, id)
}

// unhookAll cancels every registered hook. Used when initialization
// fails after some hooks were already registered, so nothing dangles
// in the host pointing at a dead session.
func (s *Session) unhookAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.hooks {
		if e.raw != 0 {
			s.api.Unhook(e.raw)
		}
		delete(s.hooks, id)
	}
}

// finish asserts the host honored its registration contract and wraps
// the handle. A zero handle means the host's own allocation failed;
// there is no recovery path a plugin can take, so it is fatal.
func (s *Session) finish(id uint64, e *hookEntry, raw host.Hook) *HookHandle {
	if raw == 0 {
		s.removeEntry(id)
		contractViolation("hook "+e.kind.String(), fmt.Sprintf("host returned a null handle for %q", e.name))
	}

	s.mu.Lock()
	e.raw = raw
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "finish",
		"kind":     e.kind.String(),
		"name":     e.name,
		"id":       id,
	}).Debug("Hook registered")
	return &HookHandle{session: s, id: id, raw: raw}
}

// HookCommand registers a named command. description, args,
// argsDescription and completion are the host's help and completion
// strings and may be empty. data is handed back to the handler on
// every invocation.
func (s *Session) HookCommand(name, description, args, argsDescription, completion string, data any, h CommandHandler) *HookHandle {
	if h == nil {
		contractViolation("HookCommand", "nil handler")
	}
	e := &hookEntry{kind: kindCommand, name: name, data: data, command: h}
	id := s.addEntry(e)
	return s.finish(id, e, s.api.HookCommand(name, description, args, argsDescription, completion, id))
}

// HookCommandRun intercepts execution of command lines matching the
// given pattern.
func (s *Session) HookCommandRun(command string, data any, h CommandRunHandler) *HookHandle {
	if h == nil {
		contractViolation("HookCommandRun", "nil handler")
	}
	e := &hookEntry{kind: kindCommandRun, name: command, data: data, commandRun: h}
	id := s.addEntry(e)
	return s.finish(id, e, s.api.HookCommandRun(command, id))
}

// HookModifier registers a text-rewriting callback for the named
// modifier.
func (s *Session) HookModifier(modifier string, data any, h ModifierHandler) *HookHandle {
	if h == nil {
		contractViolation("HookModifier", "nil handler")
	}
	e := &hookEntry{kind: kindModifier, name: modifier, data: data, modifier: h}
	id := s.addEntry(e)
	return s.finish(id, e, s.api.HookModifier(modifier, id))
}

// HookPrint registers a callback for displayed messages. tags is a
// comma-separated tag filter, message a content filter; either may be
// empty to match everything.
func (s *Session) HookPrint(tags, message string, stripColors bool, data any, h PrintHandler) *HookHandle {
	if h == nil {
		contractViolation("HookPrint", "nil handler")
	}
	e := &hookEntry{kind: kindPrint, name: tags, data: data, print: h}
	id := s.addEntry(e)
	return s.finish(id, e, s.api.HookPrint(tags, message, stripColors, id))
}

// HookSignal registers a callback for the named signal.
func (s *Session) HookSignal(signal string, data any, h SignalHandler) *HookHandle {
	if h == nil {
		contractViolation("HookSignal", "nil handler")
	}
	e := &hookEntry{kind: kindSignal, name: signal, data: data, signal: h}
	id := s.addEntry(e)
	return s.finish(id, e, s.api.HookSignal(signal, id))
}

// HookTimer schedules a recurring callback. maxCalls of zero repeats
// until the timer is stopped; alignSecond of zero disables alignment.
// The returned Timer can be cancelled individually.
func (s *Session) HookTimer(interval time.Duration, alignSecond, maxCalls int, data any, h TimerHandler) *Timer {
	if h == nil {
		contractViolation("HookTimer", "nil handler")
	}
	e := &hookEntry{kind: kindTimer, name: interval.String(), data: data, timer: h}
	id := s.addEntry(e)
	return &Timer{HookHandle: s.finish(id, e, s.api.HookTimer(interval, alignSecond, maxCalls, id))}
}

// Print writes a line to the given buffer; a nil buffer addresses the
// host's core buffer.
func (s *Session) Print(buffer host.Buffer, message string) {
	s.api.Print(buffer, message)
}

// Printf formats and writes a line to the given buffer.
func (s *Session) Printf(buffer host.Buffer, format string, args ...any) {
	s.api.Print(buffer, fmt.Sprintf(format, args...))
}

// Command has the host execute a command line in the context of the
// given buffer.
func (s *Session) Command(buffer host.Buffer, command string) {
	s.api.Command(buffer, command)
}

// SignalSend broadcasts a signal through the host. The kind is
// encoded to its lower-case wire token; the payload crosses the
// boundary untouched and its lifetime remains the caller's problem.
func (s *Session) SignalSend(signal string, kind DataKind, payload unsafe.Pointer) {
	s.api.SignalSend(signal, kind.String(), payload)
}

// HookHandle is a registered hook that can be individually cancelled.
type HookHandle struct {
	session *Session

	mu  sync.Mutex
	id  uint64
	raw host.Hook
}

// Unhook cancels the hook with the host and removes its handler from
// the registry. A second call is a no-op: the host's behavior for
// unhooking a stale handle is undefined, so the binding never
// forwards one twice.
func (h *HookHandle) Unhook() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.raw == 0 {
		return
	}
	h.session.api.Unhook(h.raw)
	h.session.removeEntry(h.id)
	h.raw = 0

	logrus.WithFields(logrus.Fields{
		"function": "Unhook",
		"id":       h.id,
	}).Debug("Hook cancelled")
}

// Timer is a hook for a scheduled callback; unlike fire-and-forget
// hook kinds it is routinely cancelled, so it carries a Stop alias.
type Timer struct {
	*HookHandle
}

// Stop cancels the timer. Equivalent to Unhook.
func (t *Timer) Stop() {
	t.Unhook()
}
