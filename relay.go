package streamkit

//***************************************************************************
// Relays
//***************************************************************************

var (
	_ Source = &PublishRelay{}
	_ Source = &BehaviorRelay{}
)

// PublishRelay implements the terminal-free counterpart of PublishSubject:
// its producer side can only publish values, never an error or completion,
// so the multicast can never be shut down from the producing end. A relay
// subscription ends only through disposal of its handle or bag.
type PublishRelay struct {
	core subjectCore
}

// NewPublishRelay returns a new instance of a PublishRelay.
func NewPublishRelay() *PublishRelay {
	return &PublishRelay{core: newSubjectCore()}
}

// ID returns the unique assigned id of the relay.
func (p *PublishRelay) ID() string {
	return p.core.id.String()
}

// Publish multicasts giving value to all current subscribers.
func (p *PublishRelay) Publish(data interface{}) {
	p.core.emitNext(data, nil)
}

// Subscribe attaches giving handler and returns its subscription handle.
// The handler will only ever receive OnNext events.
func (p *PublishRelay) Subscribe(handler EventHandler) Disposable {
	return p.core.attach(handler, nil)
}

// SubscribeWith behaves as Subscribe with per-shape callbacks; only onNext
// can ever fire on a relay, the rest exist to satisfy Source.
func (p *PublishRelay) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return p.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (p *PublishRelay) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := p.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns a cold Stream view of the relay: each subscription to
// the returned stream attaches to this same underlying relay.
func (p *PublishRelay) AsStream() *Stream {
	return p.core.asStream(nil)
}

// Len returns the current count of attached subscribers.
func (p *PublishRelay) Len() int {
	return p.core.size()
}

//***************************************************************************
// BehaviorRelay
//***************************************************************************

// BehaviorRelay implements the terminal-free counterpart of
// BehaviorSubject: it retains the most recently published value, replays it
// to every new subscriber, and can never terminate.
type BehaviorRelay struct {
	core  subjectCore
	value interface{}
}

// NewBehaviorRelay returns a new instance of a BehaviorRelay seeded with
// giving value.
func NewBehaviorRelay(seed interface{}) *BehaviorRelay {
	return &BehaviorRelay{core: newSubjectCore(), value: seed}
}

// ID returns the unique assigned id of the relay.
func (b *BehaviorRelay) ID() string {
	return b.core.id.String()
}

// Publish records giving value as the latest and multicasts it to all
// current subscribers.
func (b *BehaviorRelay) Publish(data interface{}) {
	b.core.emitNext(data, func() {
		b.value = data
	})
}

// Value returns the most recently published value, or the seed when nothing
// has been published yet.
func (b *BehaviorRelay) Value() interface{} {
	b.core.ml.Lock()
	v := b.value
	b.core.ml.Unlock()
	return v
}

// Subscribe attaches giving handler, replaying the latest value to it
// before any subsequent publication, and returns its subscription handle.
func (b *BehaviorRelay) Subscribe(handler EventHandler) Disposable {
	return b.core.attach(handler, b.replayEvents)
}

// SubscribeWith behaves as Subscribe with per-shape callbacks; only onNext
// can ever fire on a relay, the rest exist to satisfy Source.
func (b *BehaviorRelay) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return b.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (b *BehaviorRelay) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := b.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns a cold Stream view of the relay: each subscription to
// the returned stream attaches to this same underlying relay, replay
// included.
func (b *BehaviorRelay) AsStream() *Stream {
	return b.core.asStream(b.replayEvents)
}

// Len returns the current count of attached subscribers.
func (b *BehaviorRelay) Len() int {
	return b.core.size()
}

// replayEvents captures the latest value as the attach replay sequence.
// Runs under the relay lock.
func (b *BehaviorRelay) replayEvents() []Event {
	return []Event{Next(b.value)}
}
