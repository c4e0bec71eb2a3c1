package plugtest_test

import (
	"fmt"
	"testing"
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind"
	"github.com/opd-ai/plugbind/host"
	"github.com/opd-ai/plugbind/plugtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// register wires a small but representative plugin: one command, one
// print hook, one timer.
func register(t *testing.T) {
	t.Helper()

	plugbind.Register(plugbind.Metadata{
		Name:        "demo",
		Author:      "tester",
		Description: "full cycle test plugin",
		Version:     "1.0",
		License:     "MIT",
	}, func(s *plugbind.Session, args []string) error {
		s.HookCommand("greet", "Greet a nick", "<nick>", "", "", nil,
			func(data any, buf host.Buffer, args, argsEOL []string) (plugbind.ReturnCode, error) {
				if len(args) < 2 {
					return plugbind.Error, fmt.Errorf("usage: /greet <nick>")
				}
				s.Printf(buf, "hello, %s!", args[1])
				return plugbind.OK, nil
			})
		s.HookPrint("irc_join", "", false, nil,
			func(data any, buf host.Buffer, ev plugbind.PrintEvent) (plugbind.ReturnCode, error) {
				s.Printf(buf, "%s joined at %s", plugbind.Nick(ev.Prefix), ev.When.UTC().Format(time.TimeOnly))
				return plugbind.OK, nil
			})
		s.HookTimer(time.Minute, 0, 0, nil,
			func(data any, remaining int) (plugbind.ReturnCode, error) {
				s.Print(nil, "tick")
				return plugbind.OK, nil
			})
		return nil
	}, func(s *plugbind.Session) error {
		return nil
	})
}

func TestFullCycle(t *testing.T) {
	register(t)
	h := plugtest.New()

	_, rc := plugbind.Activate(h, nil)
	require.Equal(t, plugbind.OK, rc)
	defer plugbind.Deactivate()

	require.Len(t, h.Metadata(), 1)
	require.Len(t, h.Registrations(), 3)

	// Command with an argument.
	rc = h.FireCommand("greet", "greet", "alice")
	assert.Equal(t, plugbind.OK, rc)
	assert.Equal(t, []string{"hello, alice!"}, h.Prints())

	// Command failure is reported, not propagated.
	rc = h.FireCommand("greet", "greet")
	assert.Equal(t, plugbind.Error, rc)
	require.Len(t, h.ErrorPrints(), 1)
	assert.Contains(t, h.ErrorPrints()[0], "usage")

	// Print hook decodes prefix and timestamp.
	when := time.Unix(1700000000, 0)
	rc = h.FirePrint("irc_join", when, []string{"irc_join"}, true, false,
		":bob!bob@example.net", "bob has joined #go")
	assert.Equal(t, plugbind.OK, rc)
	prints := h.Prints()
	assert.Contains(t, prints[len(prints)-1], "bob joined at")

	// Timer tick.
	rc = h.FireTimer(time.Minute, -1)
	assert.Equal(t, plugbind.OK, rc)
}

func TestDeactivateAfterCycle(t *testing.T) {
	register(t)
	h := plugtest.New()

	_, rc := plugbind.Activate(h, nil)
	require.Equal(t, plugbind.OK, rc)

	assert.Equal(t, plugbind.OK, plugbind.Deactivate())
	assert.Nil(t, plugbind.Current())

	// Callbacks after teardown are answered with Error, not a crash.
	assert.Equal(t, plugbind.Error, h.FireTimer(time.Minute, -1))
}

func TestFailHooks(t *testing.T) {
	plugbind.Register(plugbind.Metadata{Name: "doomed", Version: "0"},
		func(s *plugbind.Session, args []string) error {
			s.HookSignal("quit", nil,
				func(data any, signal string, kind plugbind.DataKind, payload unsafe.Pointer) (plugbind.ReturnCode, error) {
					return plugbind.OK, nil
				})
			return nil
		},
		func(s *plugbind.Session) error { return nil })

	h := plugtest.New()
	h.FailHooks = true

	// The null handle aborts initialization; the contract panic is
	// the documented behavior, so Activate never returns normally.
	// It still clears the host handle on the way out.
	defer func() {
		require.NotNil(t, recover())
		assert.Nil(t, plugbind.Current())
	}()
	plugbind.Activate(h, nil)
}
