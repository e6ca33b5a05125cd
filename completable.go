package streamkit

//***************************************************************************
// Completable
//***************************************************************************

var _ CompletableSubscriber = completableAdapter{}

// CompletableFunc defines the producer half of a Completable. It receives
// the CompletableSubscriber of one subscription and returns the Disposable
// which releases whatever resource it acquired.
type CompletableFunc func(CompletableSubscriber) Disposable

// CompletableSubscriber defines the emission capability handed to a
// Completable's producer: exactly one Complete or one Error per
// subscription, with no value channel at all.
type CompletableSubscriber interface {
	Complete()
	Error(error)
}

// Completable expresses the completion-only contract over a cold stream:
// each subscription observes either a bare completion or a terminal error,
// never a value. Disposal and terminal semantics are inherited unchanged
// from the underlying stream.
type Completable struct {
	stream *Stream
}

// NewCompletable returns a new instance of a Completable running giving
// producer for each subscription. It panics if fn is nil.
func NewCompletable(fn CompletableFunc) *Completable {
	if fn == nil {
		panic("streamkit: NewCompletable requires a non-nil CompletableFunc")
	}
	return &Completable{stream: Create(func(sub Subscriber) Disposable {
		return fn(completableAdapter{sub: sub})
	})}
}

// CompletableDone returns a Completable completing every subscription
// immediately.
func CompletableDone() *Completable {
	return NewCompletable(func(sub CompletableSubscriber) Disposable {
		sub.Complete()
		return NopDisposable{}
	})
}

// CompletableFailed returns a Completable failing every subscription
// immediately with giving error.
func CompletableFailed(err error) *Completable {
	return NewCompletable(func(sub CompletableSubscriber) Disposable {
		sub.Error(err)
		return NopDisposable{}
	})
}

// Subscribe runs the producer for a fresh subscription and dispatches its
// outcome to giving callbacks, either of which may be nil.
func (c *Completable) Subscribe(onComplete func(), onError func(error)) Disposable {
	return c.stream.Subscribe(HandlerWith(nil, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (c *Completable) SubscribeInto(bag *DisposeBag, onComplete func(), onError func(error)) Disposable {
	sub := c.Subscribe(onComplete, onError)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns the Completable as a plain Stream whose subscriptions
// observe only the terminal event.
func (c *Completable) AsStream() *Stream {
	return c.stream
}

// completableAdapter constrains a subscription's Subscriber to the
// Completable contract.
type completableAdapter struct {
	sub Subscriber
}

func (c completableAdapter) Complete() {
	c.sub.Complete()
}

func (c completableAdapter) Error(err error) {
	c.sub.Error(err)
}
