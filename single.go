package streamkit

//***************************************************************************
// Single
//***************************************************************************

var _ SingleSubscriber = singleAdapter{}

// SingleFunc defines the producer half of a Single. It receives the
// SingleSubscriber of one subscription and returns the Disposable which
// releases whatever resource it acquired.
type SingleFunc func(SingleSubscriber) Disposable

// SingleSubscriber defines the emission capability handed to a Single's
// producer: exactly one Resolve or one Error per subscription. Further
// productions are dropped by the terminal guard and counted as contract
// violations.
type SingleSubscriber interface {
	Resolve(interface{})
	Error(error)
}

// Single expresses the exactly-one-value contract over a cold stream: each
// subscription observes either a resolved value immediately followed by
// completion, or a terminal error. Disposal and terminal semantics are
// inherited unchanged from the underlying stream.
type Single struct {
	stream *Stream
}

// NewSingle returns a new instance of a Single running giving producer for
// each subscription. It panics if fn is nil.
func NewSingle(fn SingleFunc) *Single {
	if fn == nil {
		panic("streamkit: NewSingle requires a non-nil SingleFunc")
	}
	return &Single{stream: Create(func(sub Subscriber) Disposable {
		return fn(singleAdapter{sub: sub})
	})}
}

// SingleJust returns a Single resolving every subscription immediately with
// giving value.
func SingleJust(value interface{}) *Single {
	return NewSingle(func(sub SingleSubscriber) Disposable {
		sub.Resolve(value)
		return NopDisposable{}
	})
}

// SingleFailed returns a Single failing every subscription immediately with
// giving error.
func SingleFailed(err error) *Single {
	return NewSingle(func(sub SingleSubscriber) Disposable {
		sub.Error(err)
		return NopDisposable{}
	})
}

// Subscribe runs the producer for a fresh subscription and dispatches its
// outcome to giving callbacks, either of which may be nil.
func (s *Single) Subscribe(onResolved func(interface{}), onError func(error)) Disposable {
	return s.stream.Subscribe(HandlerWith(onResolved, onError, nil))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (s *Single) SubscribeInto(bag *DisposeBag, onResolved func(interface{}), onError func(error)) Disposable {
	sub := s.Subscribe(onResolved, onError)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns the Single as a plain Stream whose subscriptions observe
// the resolved value followed by completion, or the error.
func (s *Single) AsStream() *Stream {
	return s.stream
}

// singleAdapter constrains a subscription's Subscriber to the Single
// contract, translating Resolve into a value followed by completion.
type singleAdapter struct {
	sub Subscriber
}

func (s singleAdapter) Resolve(value interface{}) {
	s.sub.Next(value)
	s.sub.Complete()
}

func (s singleAdapter) Error(err error) {
	s.sub.Error(err)
}
