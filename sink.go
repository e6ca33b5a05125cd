package streamkit

import (
	"sync"

	"github.com/gokit/xid"
)

//***********************************
//  sink
//***********************************

var (
	_ Subscriber = &sink{}
	_ Disposable = &sink{}
)

// sink bridges an activation's emissions to a subscriber's EventHandler,
// applying the TerminalGuard so the subscriber observes at most one
// terminal event and nothing after it, no matter how many producer
// threads race their emissions.
//
// A sink is both the Subscriber handed to producers and the Disposable
// handed back to the consumer: disposing it stops further delivery and
// releases whatever resource the activation bound to it.
type sink struct {
	id      xid.ID
	guard   TerminalGuard
	handler EventHandler

	// dl is the delivery lane: it serializes handler invocations so a
	// subscriber never observes two events interleaved. Dispose and
	// detach paths never take it, keeping re-entrant teardown from a
	// callback safe. Synchronously emitting into the same subscription
	// from inside its own callback is outside the contract.
	dl sync.Mutex

	rl       sync.Mutex
	bound    bool
	resource Disposable
}

// newSink returns a new instance of a sink dispatching into giving handler.
func newSink(handler EventHandler) *sink {
	if handler == nil {
		handler = func(Event) {}
	}
	return &sink{id: xid.New(), handler: handler}
}

// Next forwards giving value while the subscription is still open. Values
// arriving after the guard stopped are dropped: silently when the stop came
// from disposal (a closed race), counted and logged as a contract violation
// when a terminal event had already been forwarded.
func (s *sink) Next(data interface{}) {
	s.dl.Lock()
	if s.guard.Stopped() {
		s.dl.Unlock()
		s.noteDrop(OnNext)
		return
	}
	s.handler(Next(data))
	s.dl.Unlock()
}

// Error forwards giving error as the subscription's single terminal event.
func (s *sink) Error(err error) {
	s.terminate(Error(err))
}

// Complete forwards the subscription's single terminal completion event.
func (s *sink) Complete() {
	s.terminate(Completed())
}

// terminate performs the open to ended transition; only the winning
// thread forwards the terminal event and releases the bound resource.
func (s *sink) terminate(e Event) {
	if !s.guard.End() {
		s.noteDrop(e.Type)
		return
	}

	s.dl.Lock()
	s.handler(e)
	s.dl.Unlock()
	s.unbind()
}

// Dispose stops the subscription without a terminal event and releases the
// bound resource. It is idempotent and safe from any thread, including from
// within the subscriber's own callback.
func (s *sink) Dispose() {
	s.guard.Stop()
	s.unbind()
}

// bind assigns the activation's resource handle to giving sink, once. If
// the subscription already stopped before the activation returned, the
// handle is disposed immediately so nothing leaks.
func (s *sink) bind(d Disposable) {
	if d == nil {
		d = NopDisposable{}
	}

	s.rl.Lock()
	if s.bound {
		s.rl.Unlock()
		d.Dispose()
		return
	}
	s.bound = true
	if !s.guard.Stopped() {
		s.resource = d
		s.rl.Unlock()
		return
	}
	s.rl.Unlock()
	d.Dispose()
}

// unbind releases the bound resource, once.
func (s *sink) unbind() {
	s.rl.Lock()
	d := s.resource
	s.resource = nil
	s.rl.Unlock()
	if d != nil {
		d.Dispose()
	}
}

// park reserves the sink's delivery lane ahead of its publication to other
// threads, guaranteeing a replayed event cannot be overtaken by a racing
// emission. Must be paired with replay.
func (s *sink) park() {
	s.dl.Lock()
}

// replay forwards giving events in order on a parked delivery lane and
// opens the lane for ordinary delivery. Delivery halts early if the
// handler disposes its own subscription mid-replay.
func (s *sink) replay(events []Event) {
	for _, e := range events {
		if s.guard.Stopped() {
			break
		}
		s.handler(e)
	}
	s.dl.Unlock()
}

// noteDrop records the fate of an event which arrived after the guard
// stopped. Drops behind a forwarded terminal event indicate a misbehaving
// producer and surface through the package violation counter and logs;
// drops behind a disposal are a closed race and stay silent.
func (s *sink) noteDrop(t EventType) {
	if !s.guard.Ended() {
		return
	}
	violations.Inc()
	LogMsg("event dropped after terminal").
		String("sink", s.id.String()).
		String("type", t.String()).
		Write(WARN, diagnosticLogs())
}
