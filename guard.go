package plugbind

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// guard is the failure-containment wall between application code and
// host code. It wraps every dispatch: a returned error or a recovered
// panic is reported on the host's user-visible error channel, logged,
// and mapped to the host's error code, so nothing unwinds through the
// host's event loop.
//
// Two things deliberately pass through:
//
//   - *ContractError panics re-panic. The host contract is broken and
//     there is no defined recovery; aborting loudly is the documented
//     behavior.
//   - An OKEat return from a handler trips a contract violation. The
//     categories this package defines never produce it; observing it
//     means the host and the binding disagree about the protocol.
func (s *Session) guard(op string, fn func() (ReturnCode, error)) (rc ReturnCode) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ce, ok := r.(*ContractError); ok {
			panic(ce)
		}
		s.report(op, fmt.Errorf("panic: %v", r))
		rc = Error
	}()

	rc, err := fn()
	if err != nil {
		s.report(op, err)
		return Error
	}
	if rc == OKEat {
		contractViolation(op, "handler returned the host-reserved eat code")
	}
	return rc
}

// report emits one error-severity line on the host's print channel
// and mirrors it in the structured log. Every guarded failure is
// visible to the user; none silently disappears.
func (s *Session) report(op string, err error) {
	logrus.WithFields(logrus.Fields{
		"function": "report",
		"op":       op,
		"error":    err.Error(),
	}).Error("Handler failed")
	s.api.PrintError(fmt.Sprintf("%s: %v", op, err))
}
