package streamkit

//***************************************************************************
// Maybe
//***************************************************************************

var _ MaybeSubscriber = maybeAdapter{}

// MaybeFunc defines the producer half of a Maybe. It receives the
// MaybeSubscriber of one subscription and returns the Disposable which
// releases whatever resource it acquired.
type MaybeFunc func(MaybeSubscriber) Disposable

// MaybeSubscriber defines the emission capability handed to a Maybe's
// producer: exactly one of Resolve (a value), Complete (no value) or Error
// per subscription.
type MaybeSubscriber interface {
	Resolve(interface{})
	Complete()
	Error(error)
}

// Maybe expresses the zero-or-one-value contract over a cold stream: each
// subscription observes a resolved value followed by completion, a bare
// completion, or a terminal error. It differs from Single only in
// permitting the empty completion path; disposal and terminal semantics are
// inherited unchanged from the underlying stream.
type Maybe struct {
	stream *Stream
}

// NewMaybe returns a new instance of a Maybe running giving producer for
// each subscription. It panics if fn is nil.
func NewMaybe(fn MaybeFunc) *Maybe {
	if fn == nil {
		panic("streamkit: NewMaybe requires a non-nil MaybeFunc")
	}
	return &Maybe{stream: Create(func(sub Subscriber) Disposable {
		return fn(maybeAdapter{sub: sub})
	})}
}

// MaybeJust returns a Maybe resolving every subscription immediately with
// giving value.
func MaybeJust(value interface{}) *Maybe {
	return NewMaybe(func(sub MaybeSubscriber) Disposable {
		sub.Resolve(value)
		return NopDisposable{}
	})
}

// MaybeEmpty returns a Maybe completing every subscription immediately
// without a value.
func MaybeEmpty() *Maybe {
	return NewMaybe(func(sub MaybeSubscriber) Disposable {
		sub.Complete()
		return NopDisposable{}
	})
}

// MaybeFailed returns a Maybe failing every subscription immediately with
// giving error.
func MaybeFailed(err error) *Maybe {
	return NewMaybe(func(sub MaybeSubscriber) Disposable {
		sub.Error(err)
		return NopDisposable{}
	})
}

// Subscribe runs the producer for a fresh subscription and dispatches its
// outcome: onResolved when a value was produced, onEmpty when the producer
// completed without one, onError on failure. Any callback may be nil.
func (m *Maybe) Subscribe(onResolved func(interface{}), onEmpty func(), onError func(error)) Disposable {
	var got bool
	return m.stream.Subscribe(func(e Event) {
		switch e.Type {
		case OnNext:
			got = true
			if onResolved != nil {
				onResolved(e.Data)
			}
		case OnError:
			if onError != nil {
				onError(e.Err)
			}
		case OnCompleted:
			if !got && onEmpty != nil {
				onEmpty()
			}
		}
	})
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (m *Maybe) SubscribeInto(bag *DisposeBag, onResolved func(interface{}), onEmpty func(), onError func(error)) Disposable {
	sub := m.Subscribe(onResolved, onEmpty, onError)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns the Maybe as a plain Stream whose subscriptions observe
// at most one value followed by the terminal event.
func (m *Maybe) AsStream() *Stream {
	return m.stream
}

// maybeAdapter constrains a subscription's Subscriber to the Maybe
// contract, translating Resolve into a value followed by completion.
type maybeAdapter struct {
	sub Subscriber
}

func (m maybeAdapter) Resolve(value interface{}) {
	m.sub.Next(value)
	m.sub.Complete()
}

func (m maybeAdapter) Complete() {
	m.sub.Complete()
}

func (m maybeAdapter) Error(err error) {
	m.sub.Error(err)
}
