package plugbind

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUnknownKind indicates a signal type token outside the closed set
// the host protocol defines ("string", "int", "pointer").
var ErrUnknownKind = errors.New("unknown signal data kind")

// ContractError reports a violation of the host contract: a null hook
// handle from a registration primitive, an entry point invoked in the
// wrong lifecycle state, or a result code observed where the protocol
// never produces it. There is no recovery the host supports for any
// of these, so ContractError is raised as a panic and deliberately not
// absorbed by the dispatch guard.
type ContractError struct {
	Op     string
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("host contract violation in %s: %s", e.Op, e.Reason)
}

// contractViolation panics with a *ContractError after logging it.
func contractViolation(op, reason string) {
	err := &ContractError{Op: op, Reason: reason}
	logrus.WithFields(logrus.Fields{
		"function": "contractViolation",
		"op":       op,
		"reason":   reason,
	}).Error("Host contract violation")
	panic(err)
}
