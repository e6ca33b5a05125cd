// Package streamkit implements a push-based reactive event-stream core:
// lazily-activated cold streams, hot multicasting subjects and relays,
// bounded-cardinality stream contracts and the disposal primitives which
// tie the lifetime of a subscription to the lifetime of its owner.
package streamkit

import (
	"sync/atomic"

	"github.com/gokit/errors"
)

// errors ...
var (
	// ErrActivationPanic is the sentinel which all errors recovered from a
	// panicking activation function are wrapped with before delivery to the
	// subscriber as a terminal error event.
	ErrActivationPanic = errors.New("stream activation panicked")
)

//***************************************************************************
// Event
//***************************************************************************

// EventType defines the closed set of shapes an event may take within
// a subscription's lifetime.
type EventType uint8

// constants of event types this package respects.
const (
	OnNext EventType = iota + 1
	OnError
	OnCompleted
)

// String implements the Stringer interface.
func (t EventType) String() string {
	switch t {
	case OnNext:
		return "NEXT"
	case OnError:
		return "ERROR"
	case OnCompleted:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

// Event defines a tagged value delivered to a subscription. An event is
// exactly one of a value (OnNext), a terminal error (OnError) or a terminal
// completion (OnCompleted). Once a terminal event has been delivered to a
// subscription no further event of any shape will reach it.
type Event struct {
	Type EventType
	Data interface{}
	Err  error
}

// Next returns an Event carrying giving value.
func Next(data interface{}) Event {
	return Event{Type: OnNext, Data: data}
}

// Error returns a terminal Event carrying giving error.
func Error(err error) Event {
	return Event{Type: OnError, Err: err}
}

// Completed returns a bare terminal completion Event.
func Completed() Event {
	return Event{Type: OnCompleted}
}

// Terminal returns true/false if giving event permanently ends the
// subscription it is delivered to.
func (e Event) Terminal() bool {
	return e.Type == OnError || e.Type == OnCompleted
}

//***************************************************************************
// Subscriber and EventHandler
//***************************************************************************

// EventHandler defines the function type through which every event of a
// subscription is dispatched to its consumer. It is the single dispatch
// point for a subscriber: no other callback shape exists beneath it.
type EventHandler func(Event)

// Subscriber defines the emission capability handed to producers and
// activation functions. Implementations enforce the terminal contract:
// after the first Error or Complete every further call becomes a no-op.
type Subscriber interface {
	Next(interface{})
	Error(error)
	Complete()
}

// HandlerWith composes giving optional per-shape callbacks into an
// EventHandler. Nil callbacks are allowed and simply skip their shape.
func HandlerWith(onNext func(interface{}), onError func(error), onComplete func()) EventHandler {
	return func(e Event) {
		switch e.Type {
		case OnNext:
			if onNext != nil {
				onNext(e.Data)
			}
		case OnError:
			if onError != nil {
				onError(e.Err)
			}
		case OnCompleted:
			if onComplete != nil {
				onComplete()
			}
		}
	}
}

// dispatchEvent replays giving event through the matching method of a
// Subscriber.
func dispatchEvent(sub Subscriber, e Event) {
	switch e.Type {
	case OnNext:
		sub.Next(e.Data)
	case OnError:
		sub.Error(e.Err)
	case OnCompleted:
		sub.Complete()
	}
}

//***************************************************************************
// Disposable
//***************************************************************************

// Disposable defines a single-operation release token returned by every
// subscription. Dispose is idempotent and safe to call from any thread:
// the underlying release action runs at most once.
type Disposable interface {
	Dispose()
}

// Source defines the attachment capability shared by cold streams, subjects
// and relays.
type Source interface {
	Subscribe(EventHandler) Disposable
	SubscribeWith(func(interface{}), func(error), func()) Disposable
	SubscribeInto(*DisposeBag, EventHandler) Disposable
}

//***************************************************************************
// Package diagnostics
//***************************************************************************

var (
	violations AtomicCounter
	pkgLogs    atomic.Value
)

// logsBox wraps a Logs so differing implementations share one concrete
// type inside the atomic.Value.
type logsBox struct {
	logs Logs
}

// UseLogs installs giving Logs as the destination for the package's
// diagnostic output (contract violations, activation panics, bag
// teardowns). Passing nil restores the default DrainLog.
func UseLogs(l Logs) {
	if l == nil {
		l = DrainLog{}
	}
	pkgLogs.Store(logsBox{logs: l})
}

// diagnosticLogs returns the installed diagnostics Logs, defaulting to
// DrainLog when none was installed.
func diagnosticLogs() Logs {
	if v, ok := pkgLogs.Load().(logsBox); ok {
		return v.logs
	}
	return DrainLog{}
}

// Violations returns the total count of contract violations observed by the
// package: events produced after a terminal event already closed their
// subscription or subject, including excess productions against the
// bounded-cardinality contracts. Drops caused by disposal are closed races,
// not violations, and are never counted.
func Violations() int64 {
	return violations.Get()
}
