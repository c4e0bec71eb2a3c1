package plugbind

import (
	"errors"
	"testing"

	"github.com/opd-ai/plugbind/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNilCallbacksPanic(t *testing.T) {
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	cases := []struct {
		name string
		init InitFunc
		end  EndFunc
	}{
		{"nil init", nil, func(*Session) error { return nil }},
		{"nil end", func(*Session, []string) error { return nil }, nil},
		{"both nil", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r, "Register accepted nil callback")
				var ce *ContractError
				require.True(t, errors.As(r.(error), &ce))
			}()
			Register(testMetadata(), tc.init, tc.end)
		})
	}
}

func TestActivateWithoutRegister(t *testing.T) {
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	m := newMockHost()
	s, rc := Activate(m, nil)
	assert.Nil(t, s)
	assert.Equal(t, Error, rc)
	assert.Empty(t, m.described, "metadata must not be pushed on rejected init")
}

func TestActivatePushesMetadataOnce(t *testing.T) {
	m, _ := activateTest(t)

	require.Len(t, m.described, 1)
	assert.Equal(t, "testplug", m.described[0].Name)
	assert.Equal(t, "MIT", m.described[0].License)
}

func TestActivateWhileActiveRejected(t *testing.T) {
	m, s := activateTest(t)

	s2, rc := Activate(m, nil)
	assert.Nil(t, s2)
	assert.Equal(t, Error, rc)
	assert.Same(t, s, Current(), "live session must survive the rejected init")
}

func TestActivateInitFailureClearsSession(t *testing.T) {
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	Register(testMetadata(),
		func(s *Session, args []string) error {
			// A hook registered before the failure must not dangle.
			s.HookCommandRun("quit", nil, func(any, host.Buffer, string) (ReturnCode, error) {
				return OK, nil
			})
			return errors.New("init exploded")
		},
		func(s *Session) error { return nil })

	m := newMockHost()
	s, rc := Activate(m, nil)

	assert.Nil(t, s)
	assert.Equal(t, Error, rc)
	assert.Nil(t, Current())
	assert.Len(t, m.errPrints, 1, "init failure must surface on the error channel")
	assert.Len(t, m.unhooked, 1, "hooks from the failed init must be cancelled")

	// The controller is back to unregistered: a second Activate is
	// rejected until Register runs again.
	_, rc = Activate(m, nil)
	assert.Equal(t, Error, rc)
}

func TestDeactivateWithoutActivate(t *testing.T) {
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	assert.Equal(t, Error, Deactivate())
}

func TestDeactivateClearsSession(t *testing.T) {
	_, s := activateTest(t)
	require.Same(t, s, Current())

	assert.Equal(t, OK, Deactivate())
	assert.Nil(t, Current())

	// End entry point is rejected once the session is gone.
	assert.Equal(t, Error, Deactivate())
}

func TestDeactivateEndFailureStillClears(t *testing.T) {
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	Register(testMetadata(),
		func(s *Session, args []string) error { return nil },
		func(s *Session) error { return errors.New("end exploded") })

	m := newMockHost()
	_, rc := Activate(m, nil)
	require.Equal(t, OK, rc)

	assert.Equal(t, Error, Deactivate())
	assert.Nil(t, Current(), "host handle must be cleared even when end fails")
	assert.Len(t, m.errPrints, 1)
}

func TestActivatePassesArgs(t *testing.T) {
	resetLifecycle()
	t.Cleanup(resetLifecycle)

	var got []string
	Register(testMetadata(),
		func(s *Session, args []string) error {
			got = args
			return nil
		},
		func(s *Session) error { return nil })

	_, rc := Activate(newMockHost(), []string{"-debug", "chan=#go"})
	require.Equal(t, OK, rc)
	assert.Equal(t, []string{"-debug", "chan=#go"}, got)
}
