package streamkit

import "sync"

//***************************************************************************
// eventBuffer
//***************************************************************************

var bufNodePool = sync.Pool{New: func() interface{} {
	return new(bufNode)
}}

type bufNode struct {
	value Event
	next  *bufNode
}

// eventBuffer implements a bounded FIFO of events retaining the last
// capped events pushed: once the cap is reached the oldest event is
// discarded to make room for the new. Nodes are recycled through a pool
// to keep steady pushing cheap. A cap value of -1 means there will be no
// maximum limit of retained events.
//
// eventBuffer is not safe for concurrent use; the owning subject
// serializes access under its own lock.
type eventBuffer struct {
	head   *bufNode
	tail   *bufNode
	capped int
	total  int
}

// newEventBuffer returns a new instance of an eventBuffer bounded to
// giving cap.
func newEventBuffer(capped int) *eventBuffer {
	return &eventBuffer{capped: capped}
}

// push adds the event to the back of the buffer, evicting the front
// when the cap has been reached.
func (eb *eventBuffer) push(ev Event) {
	if eb.capped != -1 && eb.total >= eb.capped {
		eb.evict()
	}

	n := bufNodePool.Get().(*bufNode)
	n.value = ev

	eb.total++
	if eb.head == nil && eb.tail == nil {
		eb.head, eb.tail = n, n
		return
	}

	eb.tail.next = n
	eb.tail = n
}

// evict discards the front of the buffer, allowing new space.
func (eb *eventBuffer) evict() {
	head := eb.head
	if head == nil {
		return
	}

	eb.total--
	eb.head = head.next
	if eb.tail == head {
		eb.tail = eb.head
	}

	head.next = nil
	head.value = Event{}
	bufNodePool.Put(head)
}

// snapshot copies out the retained events in push order.
func (eb *eventBuffer) snapshot() []Event {
	if eb.total == 0 {
		return nil
	}

	events := make([]Event, 0, eb.total)
	for n := eb.head; n != nil; n = n.next {
		events = append(events, n.value)
	}
	return events
}

//***************************************************************************
// ReplaySubject
//***************************************************************************

var (
	_ Subscriber = &ReplaySubject{}
	_ Source     = &ReplaySubject{}
)

// ReplaySubject implements a hot multicast source which retains a bounded
// window of the values pushed through it: every new subscriber receives
// the retained window before any later emission. Unlike a BehaviorSubject
// it keeps replaying after termination, so late attachers receive the
// window followed by the terminal event.
type ReplaySubject struct {
	core subjectCore
	buf  *eventBuffer
}

// NewReplaySubject returns a new instance of a ReplaySubject retaining
// the last size values pushed through it.
func NewReplaySubject(size int) *ReplaySubject {
	if size < 1 {
		panic("streamkit: NewReplaySubject requires a positive buffer size")
	}
	return &ReplaySubject{core: newSubjectCore(), buf: newEventBuffer(size)}
}

// NewUnboundedReplaySubject returns a new instance of a ReplaySubject
// retaining every value pushed through it.
func NewUnboundedReplaySubject() *ReplaySubject {
	return &ReplaySubject{core: newSubjectCore(), buf: newEventBuffer(-1)}
}

// ID returns the unique assigned id of the subject.
func (r *ReplaySubject) ID() string {
	return r.core.id.String()
}

// Next adds giving value to the retained window and multicasts it to all
// current subscribers. Values pushed after the subject terminated are
// dropped and counted as violations; the window keeps its pre-terminal
// contents.
func (r *ReplaySubject) Next(data interface{}) {
	r.core.emitNext(data, func() {
		r.buf.push(Next(data))
	})
}

// Error terminates the subject with giving error.
func (r *ReplaySubject) Error(err error) {
	r.core.emitTerminal(Error(err), nil)
}

// Complete terminates the subject with a completion event.
func (r *ReplaySubject) Complete() {
	r.core.emitTerminal(Completed(), nil)
}

// Subscribe attaches giving handler, replaying the retained window to it
// before any subsequent emission, and returns its subscription handle.
func (r *ReplaySubject) Subscribe(handler EventHandler) Disposable {
	return r.core.attach(handler, r.replayEvents)
}

// SubscribeWith behaves as Subscribe with per-shape callbacks, any of which
// may be nil.
func (r *ReplaySubject) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return r.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (r *ReplaySubject) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := r.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns a cold Stream view of the subject: each subscription to
// the returned stream attaches to this same underlying subject, replay
// included.
func (r *ReplaySubject) AsStream() *Stream {
	return r.core.asStream(r.replayEvents)
}

// Terminated returns true/false whether the subject has forwarded its
// terminal event.
func (r *ReplaySubject) Terminated() bool {
	return r.core.guard.Ended()
}

// Len returns the current count of attached subscribers.
func (r *ReplaySubject) Len() int {
	return r.core.size()
}

// replayEvents captures the retained window as the attach replay sequence.
// Runs under the subject lock.
func (r *ReplaySubject) replayEvents() []Event {
	return r.buf.snapshot()
}
