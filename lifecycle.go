package plugbind

import (
	"sync"

	"github.com/opd-ai/plugbind/host"
	"github.com/sirupsen/logrus"
)

// lifecycleState tracks the plugin's position in the host handshake.
type lifecycleState uint8

const (
	stateUnregistered lifecycleState = iota
	stateRegistered
	stateActive
)

func (s lifecycleState) String() string {
	switch s {
	case stateUnregistered:
		return "unregistered"
	case stateRegistered:
		return "registered"
	case stateActive:
		return "active"
	default:
		return "invalid"
	}
}

// lifecycle is the process-wide controller state. There is exactly
// one host connection per process; the mutex keeps the state machine
// coherent even under a host that breaks its single-thread promise.
var lifecycle struct {
	mu      sync.Mutex
	state   lifecycleState
	meta    Metadata
	init    InitFunc
	end     EndFunc
	session *Session
}

// Register stores the plugin metadata and the two required lifecycle
// callbacks. It must run before the host invokes the init entry
// point, typically from the plugin's package init function.
//
// Nil callbacks are a programming error, not a runtime condition, and
// panic immediately. Calling Register while the plugin is active is a
// contract violation.
func Register(meta Metadata, init InitFunc, end EndFunc) {
	if init == nil || end == nil {
		contractViolation("Register", "init and end callbacks are required")
	}

	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	if lifecycle.state == stateActive {
		contractViolation("Register", "plugin is already active")
	}

	lifecycle.meta = meta
	lifecycle.init = init
	lifecycle.end = end
	lifecycle.state = stateRegistered

	logrus.WithFields(logrus.Fields{
		"function": "Register",
		"name":     meta.Name,
		"version":  meta.Version,
	}).Debug("Plugin registered")
}

// Activate is the host-invoked init entry point. It pushes the plugin
// metadata to the host, runs the registered init callback under the
// dispatch guard, and on success transitions the plugin to active.
//
// Activating while unregistered or already active is a contract
// violation and yields Error without touching the current state. An
// init failure clears everything back to unregistered, so the host
// handle never outlives a failed initialization.
func Activate(api host.API, args []string) (*Session, ReturnCode) {
	lifecycle.mu.Lock()
	if lifecycle.state != stateRegistered {
		state := lifecycle.state
		lifecycle.mu.Unlock()
		logrus.WithFields(logrus.Fields{
			"function": "Activate",
			"state":    state.String(),
		}).Error("Init entry point invoked in wrong state")
		return nil, Error
	}

	s := newSession(api)
	lifecycle.session = s
	meta := lifecycle.meta
	init := lifecycle.init
	lifecycle.mu.Unlock()

	api.Describe(meta)

	// A contract violation during init (a null hook handle, say)
	// aborts loudly by design, but the host handle must still be
	// cleared before the panic leaves this entry point.
	defer func() {
		if r := recover(); r != nil {
			lifecycle.mu.Lock()
			lifecycle.session = nil
			lifecycle.state = stateUnregistered
			lifecycle.init = nil
			lifecycle.end = nil
			lifecycle.mu.Unlock()
			panic(r)
		}
	}()

	rc := s.guard("init", func() (ReturnCode, error) {
		return OK, init(s, args)
	})

	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	if rc != OK {
		s.unhookAll()
		lifecycle.session = nil
		lifecycle.state = stateUnregistered
		lifecycle.init = nil
		lifecycle.end = nil
		logrus.WithFields(logrus.Fields{
			"function": "Activate",
			"name":     meta.Name,
		}).Error("Plugin initialization failed")
		return nil, Error
	}

	lifecycle.state = stateActive
	logrus.WithFields(logrus.Fields{
		"function": "Activate",
		"name":     meta.Name,
		"args":     args,
	}).Info("Plugin activated")
	return s, OK
}

// Deactivate is the host-invoked end entry point. The finalize
// callback runs under the dispatch guard; the host handle is cleared
// regardless of its outcome and the controller returns to the
// unregistered state.
func Deactivate() ReturnCode {
	lifecycle.mu.Lock()
	if lifecycle.state != stateActive {
		state := lifecycle.state
		lifecycle.mu.Unlock()
		logrus.WithFields(logrus.Fields{
			"function": "Deactivate",
			"state":    state.String(),
		}).Error("End entry point invoked in wrong state")
		return Error
	}
	s := lifecycle.session
	end := lifecycle.end
	lifecycle.mu.Unlock()

	rc := s.guard("end", func() (ReturnCode, error) {
		return OK, end(s)
	})

	lifecycle.mu.Lock()
	lifecycle.session = nil
	lifecycle.state = stateUnregistered
	lifecycle.init = nil
	lifecycle.end = nil
	lifecycle.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Deactivate",
		"result":   rc.String(),
	}).Info("Plugin deactivated")
	return rc
}

// Current returns the live session, or nil when the plugin is not
// active. Every dispatch path goes through it; a nil result there
// means the host fired a callback outside the init/end window.
func Current() *Session {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	return lifecycle.session
}
