package plugbind

import (
	"runtime"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind/cstr"
	"github.com/opd-ai/plugbind/host"
)

// ---------------------------------------------------------------------------
// mockHost is a recording host.API implementation for unit tests.
// ---------------------------------------------------------------------------

type hookRecord struct {
	kind string
	name string
	id   uint64
}

type sentSignal struct {
	signal  string
	kind    string
	payload unsafe.Pointer
}

type mockHost struct {
	mu sync.Mutex

	// failHooks makes every registration primitive return a zero
	// handle, simulating host-side allocation failure.
	failHooks bool

	nextHook  host.Hook
	described []host.Metadata
	hooks     []hookRecord
	unhooked  []host.Hook
	prints    []string
	errPrints []string
	commands  []string
	signals   []sentSignal
}

func newMockHost() *mockHost {
	return &mockHost{nextHook: 1}
}

func (m *mockHost) allocate(kind, name string, id uint64) host.Hook {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failHooks {
		return 0
	}
	h := m.nextHook
	m.nextHook++
	m.hooks = append(m.hooks, hookRecord{kind: kind, name: name, id: id})
	return h
}

func (m *mockHost) Describe(meta host.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.described = append(m.described, meta)
}

func (m *mockHost) HookCommand(name, description, args, argsDescription, completion string, id uint64) host.Hook {
	return m.allocate("command", name, id)
}

func (m *mockHost) HookCommandRun(command string, id uint64) host.Hook {
	return m.allocate("command_run", command, id)
}

func (m *mockHost) HookModifier(modifier string, id uint64) host.Hook {
	return m.allocate("modifier", modifier, id)
}

func (m *mockHost) HookPrint(tags, message string, stripColors bool, id uint64) host.Hook {
	return m.allocate("print", tags, id)
}

func (m *mockHost) HookSignal(signal string, id uint64) host.Hook {
	return m.allocate("signal", signal, id)
}

func (m *mockHost) HookTimer(interval time.Duration, alignSecond, maxCalls int, id uint64) host.Hook {
	return m.allocate("timer", interval.String(), id)
}

func (m *mockHost) Unhook(h host.Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unhooked = append(m.unhooked, h)
}

func (m *mockHost) Print(buffer host.Buffer, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prints = append(m.prints, message)
}

func (m *mockHost) PrintError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errPrints = append(m.errPrints, message)
}

func (m *mockHost) Command(buffer host.Buffer, command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, command)
}

func (m *mockHost) SignalSend(signal, kind string, payload unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, sentSignal{signal: signal, kind: kind, payload: payload})
}

// ---------------------------------------------------------------------------
// Lifecycle helpers: the controller is process-wide state, so every
// test starts from a clean slate.
// ---------------------------------------------------------------------------

func resetLifecycle() {
	lifecycle.mu.Lock()
	lifecycle.state = stateUnregistered
	lifecycle.meta = Metadata{}
	lifecycle.init = nil
	lifecycle.end = nil
	lifecycle.session = nil
	lifecycle.mu.Unlock()
}

func testMetadata() Metadata {
	return Metadata{
		Name:        "testplug",
		Author:      "tester",
		Description: "test plugin",
		Version:     "0.0.1",
		License:     "MIT",
	}
}

// activateTest registers a no-op plugin and activates it against a
// fresh mock host.
func activateTest(t *testing.T) (*mockHost, *Session) {
	t.Helper()
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	Register(testMetadata(),
		func(s *Session, args []string) error { return nil },
		func(s *Session) error { return nil })

	m := newMockHost()
	s, rc := Activate(m, nil)
	if rc != OK || s == nil {
		t.Fatalf("Activate = (%v, %v), want session and OK", s, rc)
	}
	return m, s
}

// ---------------------------------------------------------------------------
// cVector lays out strings as a C-style string array for dispatch
// tests, pinned for the duration of the test.
// ---------------------------------------------------------------------------

func cVector(t *testing.T, ss []string) (unsafe.Pointer, int) {
	t.Helper()

	raws := make([]*cstr.Raw, len(ss))
	ptrs := make([]unsafe.Pointer, len(ss))
	for i, s := range ss {
		raws[i] = cstr.Encode(s)
		ptrs[i] = raws[i].Ptr()
	}

	var base unsafe.Pointer
	if len(ptrs) > 0 {
		var pin runtime.Pinner
		pin.Pin(&ptrs[0])
		base = unsafe.Pointer(&ptrs[0])
		t.Cleanup(pin.Unpin)
	}
	t.Cleanup(func() {
		for _, r := range raws {
			r.Free()
		}
		runtime.KeepAlive(ptrs)
	})
	return base, len(ptrs)
}

// cString encodes one raw C string scoped to the test.
func cString(t *testing.T, s string) unsafe.Pointer {
	t.Helper()
	raw := cstr.Encode(s)
	t.Cleanup(raw.Free)
	return raw.Ptr()
}
