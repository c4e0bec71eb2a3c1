package plugbind

import (
	"time"
	"unsafe"

	"github.com/opd-ai/plugbind/host"
)

// Metadata is the plugin description registered with the lifecycle
// controller and pushed to the host during initialization.
type Metadata = host.Metadata

// InitFunc is the application's initialize callback. It runs once,
// when the host activates the plugin, and is the place to register
// hooks. A returned error fails activation.
type InitFunc func(s *Session, args []string) error

// EndFunc is the application's finalize callback. It runs when the
// host unloads the plugin; the session is torn down afterwards
// regardless of the returned error.
type EndFunc func(s *Session) error

// PrintEvent carries the decoded arguments of a displayed message.
type PrintEvent struct {
	// When is the host's timestamp for the message.
	When time.Time

	// Tags are the message's tags in host order.
	Tags []string

	// Displayed reports whether the host actually displayed the
	// message (it may have been filtered).
	Displayed bool

	// Highlight reports whether the message triggered a highlight.
	Highlight bool

	// Prefix and Message are the two halves of the displayed line.
	Prefix  string
	Message string
}

// CommandHandler handles an invocation of a registered command.
// args holds the command and its argument words; argsEOL holds, at
// each index, the rest of the line from that word on. Both are owned
// copies with one element per host-reported argument.
type CommandHandler func(data any, buffer host.Buffer, args, argsEOL []string) (ReturnCode, error)

// CommandRunHandler intercepts execution of a matching command line.
type CommandRunHandler func(data any, buffer host.Buffer, command string) (ReturnCode, error)

// ModifierHandler rewrites text for a registered modifier. The
// returned string replaces the input; if the handler fails, the host
// receives the input unchanged.
type ModifierHandler func(data any, modifier, modifierData, text string) (string, error)

// PrintHandler handles a displayed message.
type PrintHandler func(data any, buffer host.Buffer, event PrintEvent) (ReturnCode, error)

// SignalHandler handles a broadcast signal. The payload pointer is
// foreign-owned and passed through untouched; kind says how the
// handler may interpret it. The handler must not retain or free it.
type SignalHandler func(data any, signal string, kind DataKind, payload unsafe.Pointer) (ReturnCode, error)

// TimerHandler handles a timer tick. remaining is the host's count of
// calls still to come, -1 for an unbounded timer.
type TimerHandler func(data any, remaining int) (ReturnCode, error)
