package streamkit

import (
	"github.com/gokit/errors"
	"github.com/gokit/xid"
)

//***************************************************************************
// Stream
//***************************************************************************

var _ Source = &Stream{}

// ActivationFunc defines the producer half of a cold stream. It receives the
// Subscriber of a single subscription, may emit into it synchronously or
// hand it to other goroutines, and returns the Disposable which releases
// whatever resource it acquired. Return NopDisposable (or nil) when there is
// nothing to release.
type ActivationFunc func(Subscriber) Disposable

// Stream implements a cold event source: a lazy description of producer
// work which performs nothing until subscribed, then runs its activation
// function once per subscription so every subscriber gets a private,
// independent run of the producer.
type Stream struct {
	id       xid.ID
	activate ActivationFunc
}

// Create returns a new Stream running giving activation function for each
// subscription. It panics if fn is nil.
func Create(fn ActivationFunc) *Stream {
	if fn == nil {
		panic("streamkit: Create requires a non-nil ActivationFunc")
	}
	return &Stream{id: xid.New(), activate: fn}
}

// ID returns the unique assigned id of the stream.
func (s *Stream) ID() string {
	return s.id.String()
}

// Subscribe attaches giving handler to a fresh run of the activation and
// returns the subscription's Disposable. Disposing it stops further
// delivery and releases the activation's resource; it never synthesizes a
// terminal event.
func (s *Stream) Subscribe(handler EventHandler) Disposable {
	sub := newSink(handler)
	s.start(sub)
	return sub
}

// SubscribeWith behaves as Subscribe with per-shape callbacks, any of which
// may be nil.
func (s *Stream) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return s.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving
// bag, tying its lifetime to the bag's.
func (s *Stream) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := s.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// start runs the activation for giving sink. A panicking activation is
// recovered and delivered to the subscriber as a terminal error event
// wrapped with ErrActivationPanic, leaving the subscription cleanly ended
// rather than unwinding the subscriber's stack.
func (s *Stream) start(sub *sink) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err := capturedPanic(r)
		LogMsg("stream activation panicked").
			String("stream", s.id.String()).
			String("sink", sub.id.String()).
			String("reason", err.Error()).
			Write(PANIC, diagnosticLogs())

		sub.Error(err)
		sub.bind(NopDisposable{})
	}()

	sub.bind(s.activate(sub))
}

// capturedPanic converts a recovered activation panic into the error
// delivered to the subscriber. Callers can match the result against
// ErrActivationPanic with errors.IsAny.
func capturedPanic(r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(ErrActivationPanic, "recovered: %s", err.Error())
	}
	return errors.Wrap(ErrActivationPanic, "recovered: %v", r)
}
