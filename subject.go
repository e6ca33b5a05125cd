package streamkit

import (
	"sync"

	"github.com/gokit/xid"
)

//***************************************************************************
// subjectCore
//***************************************************************************

// subjectCore implements the multicast machinery shared by subjects and
// relays: a serial-keyed table of attached sinks guarded by a mutex, and a
// source-wide TerminalGuard so a terminal event fires once for all current
// and future subscribers alike.
//
// Emission snapshots the table and releases the lock before forwarding, so
// attachments, detachments and disposals performed inside a subscriber
// callback never deadlock; they become visible to the next emission.
type subjectCore struct {
	id    xid.ID
	guard TerminalGuard

	ml     sync.Mutex
	serial uint64
	table  map[uint64]*sink
	term   Event
}

func newSubjectCore() subjectCore {
	return subjectCore{id: xid.New(), table: map[uint64]*sink{}}
}

// attach registers giving handler under a fresh serial and returns its
// subscription handle. When replay is non-nil it runs under the subject
// lock to capture the sink's replay sequence, and the sink's delivery lane
// is parked first so a racing emission cannot overtake a replayed event.
// Against a terminated subject the handler is never stored: it receives
// whatever the replay hook still yields, then the terminal event which
// fired.
func (c *subjectCore) attach(handler EventHandler, replay func() []Event) Disposable {
	snk := newSink(handler)

	c.ml.Lock()
	if c.guard.Stopped() {
		var rv []Event
		if replay != nil {
			rv = replay()
		}
		term := c.term
		c.ml.Unlock()

		snk.bind(NopDisposable{})
		for _, ev := range rv {
			dispatchEvent(snk, ev)
		}
		dispatchEvent(snk, term)
		return snk
	}

	var parked bool
	var rv []Event
	if replay != nil {
		rv = replay()
		if len(rv) > 0 {
			parked = true
			snk.park()
		}
	}

	c.serial++
	key := c.serial
	c.table[key] = snk
	c.ml.Unlock()

	snk.bind(NewDisposeAction(func() {
		c.detach(key)
	}))

	if parked {
		snk.replay(rv)
	}
	return snk
}

// detach removes giving serial's sink from the table if still present.
func (c *subjectCore) detach(key uint64) {
	c.ml.Lock()
	delete(c.table, key)
	c.ml.Unlock()
}

// emitNext multicasts giving value to the sinks attached at the moment of
// emission. A non-nil update hook runs under the subject lock before the
// snapshot is taken, keeping replay state consistent with emission order.
func (c *subjectCore) emitNext(data interface{}, update func()) {
	c.ml.Lock()
	if c.guard.Stopped() {
		c.ml.Unlock()
		c.noteLate(OnNext)
		return
	}
	if update != nil {
		update()
	}
	sinks := c.snapshotSinks()
	c.ml.Unlock()

	for _, snk := range sinks {
		snk.Next(data)
	}
}

// emitTerminal performs the subject-wide open to ended transition, clears
// the table and forwards giving terminal event to every sink attached at
// that moment. A non-nil prelude hook runs under the subject lock, after
// the transition, to capture events which must reach every sink just ahead
// of the terminal event. Losers of the transition race are counted as late
// producers.
func (c *subjectCore) emitTerminal(e Event, prelude func() []Event) {
	c.ml.Lock()
	if !c.guard.End() {
		c.ml.Unlock()
		c.noteLate(e.Type)
		return
	}
	c.term = e
	var pre []Event
	if prelude != nil {
		pre = prelude()
	}
	sinks := c.snapshotSinks()
	c.table = map[uint64]*sink{}
	c.ml.Unlock()

	for _, snk := range sinks {
		for _, ev := range pre {
			dispatchEvent(snk, ev)
		}
		dispatchEvent(snk, e)
	}
}

// snapshotSinks copies the attached sink set. Callers must hold c.ml.
func (c *subjectCore) snapshotSinks() []*sink {
	sinks := make([]*sink, 0, len(c.table))
	for _, snk := range c.table {
		sinks = append(sinks, snk)
	}
	return sinks
}

// size returns the count of currently attached sinks.
func (c *subjectCore) size() int {
	c.ml.Lock()
	n := len(c.table)
	c.ml.Unlock()
	return n
}

// noteLate records an event produced against an already terminated subject,
// surfacing the producer bug through the package violation counter and logs.
func (c *subjectCore) noteLate(t EventType) {
	violations.Inc()
	LogMsg("event produced after subject terminated").
		String("subject", c.id.String()).
		String("type", t.String()).
		Write(WARN, diagnosticLogs())
}

// asStream wraps giving core as a cold Stream whose activation attaches to
// the subject, letting hot sources travel through APIs built around Stream.
func (c *subjectCore) asStream(replay func() []Event) *Stream {
	return Create(func(sub Subscriber) Disposable {
		return c.attach(func(e Event) { dispatchEvent(sub, e) }, replay)
	})
}

//***************************************************************************
// PublishSubject
//***************************************************************************

var (
	_ Subscriber = &PublishSubject{}
	_ Source     = &PublishSubject{}
)

// PublishSubject implements a hot multicast source which is also an event
// sink: values pushed into it fan out to every subscriber attached at that
// moment. New subscribers see only events emitted after they attach.
type PublishSubject struct {
	core subjectCore
}

// NewPublishSubject returns a new instance of a PublishSubject.
func NewPublishSubject() *PublishSubject {
	return &PublishSubject{core: newSubjectCore()}
}

// ID returns the unique assigned id of the subject.
func (p *PublishSubject) ID() string {
	return p.core.id.String()
}

// Next multicasts giving value to all current subscribers. Values pushed
// after the subject terminated are dropped and counted as violations.
func (p *PublishSubject) Next(data interface{}) {
	p.core.emitNext(data, nil)
}

// Error terminates the subject with giving error, forwarding it once to all
// current subscribers and thereafter to every late attacher.
func (p *PublishSubject) Error(err error) {
	p.core.emitTerminal(Error(err), nil)
}

// Complete terminates the subject with a completion event, forwarding it
// once to all current subscribers and thereafter to every late attacher.
func (p *PublishSubject) Complete() {
	p.core.emitTerminal(Completed(), nil)
}

// Subscribe attaches giving handler and returns its subscription handle.
// Disposing the handle detaches the handler without affecting others.
func (p *PublishSubject) Subscribe(handler EventHandler) Disposable {
	return p.core.attach(handler, nil)
}

// SubscribeWith behaves as Subscribe with per-shape callbacks, any of which
// may be nil.
func (p *PublishSubject) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return p.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (p *PublishSubject) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := p.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns a cold Stream view of the subject: each subscription to
// the returned stream attaches to this same underlying subject.
func (p *PublishSubject) AsStream() *Stream {
	return p.core.asStream(nil)
}

// Terminated returns true/false whether the subject has forwarded its
// terminal event.
func (p *PublishSubject) Terminated() bool {
	return p.core.guard.Ended()
}

// Len returns the current count of attached subscribers.
func (p *PublishSubject) Len() int {
	return p.core.size()
}

//***************************************************************************
// BehaviorSubject
//***************************************************************************

var (
	_ Subscriber = &BehaviorSubject{}
	_ Source     = &BehaviorSubject{}
)

// BehaviorSubject implements a hot multicast source which retains the most
// recently emitted value: every new subscriber immediately receives that
// value (the seed if nothing was emitted yet) before any later emission.
// Subscribers attaching after termination receive only the terminal event.
type BehaviorSubject struct {
	core  subjectCore
	value interface{}
}

// NewBehaviorSubject returns a new instance of a BehaviorSubject seeded
// with giving value.
func NewBehaviorSubject(seed interface{}) *BehaviorSubject {
	return &BehaviorSubject{core: newSubjectCore(), value: seed}
}

// ID returns the unique assigned id of the subject.
func (b *BehaviorSubject) ID() string {
	return b.core.id.String()
}

// Next records giving value as the latest and multicasts it to all current
// subscribers. Values pushed after the subject terminated are dropped and
// counted as violations.
func (b *BehaviorSubject) Next(data interface{}) {
	b.core.emitNext(data, func() {
		b.value = data
	})
}

// Error terminates the subject with giving error.
func (b *BehaviorSubject) Error(err error) {
	b.core.emitTerminal(Error(err), nil)
}

// Complete terminates the subject with a completion event.
func (b *BehaviorSubject) Complete() {
	b.core.emitTerminal(Completed(), nil)
}

// Value returns the most recently emitted value, or the seed when nothing
// has been emitted. After termination it keeps returning the last value
// recorded before the terminal event.
func (b *BehaviorSubject) Value() interface{} {
	b.core.ml.Lock()
	v := b.value
	b.core.ml.Unlock()
	return v
}

// Subscribe attaches giving handler, replaying the latest value to it
// before any subsequent emission, and returns its subscription handle.
func (b *BehaviorSubject) Subscribe(handler EventHandler) Disposable {
	return b.core.attach(handler, b.replayEvents)
}

// SubscribeWith behaves as Subscribe with per-shape callbacks, any of which
// may be nil.
func (b *BehaviorSubject) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return b.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (b *BehaviorSubject) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := b.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns a cold Stream view of the subject: each subscription to
// the returned stream attaches to this same underlying subject, replay
// included.
func (b *BehaviorSubject) AsStream() *Stream {
	return b.core.asStream(b.replayEvents)
}

// Terminated returns true/false whether the subject has forwarded its
// terminal event.
func (b *BehaviorSubject) Terminated() bool {
	return b.core.guard.Ended()
}

// Len returns the current count of attached subscribers.
func (b *BehaviorSubject) Len() int {
	return b.core.size()
}

// replayEvents captures the latest value as the attach replay sequence.
// Runs under the subject lock. Once the subject terminated it yields
// nothing, so late attachers receive only the terminal event.
func (b *BehaviorSubject) replayEvents() []Event {
	if b.core.guard.Stopped() {
		return nil
	}
	return []Event{Next(b.value)}
}
