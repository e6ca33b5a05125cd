package streamkit

//***************************************************************************
// AsyncSubject
//***************************************************************************

var (
	_ Subscriber = &AsyncSubject{}
	_ Source     = &AsyncSubject{}
)

// AsyncSubject implements a hot source with future semantics: values
// pushed into it are recorded but never forwarded live, and completing
// the subject multicasts the final recorded value just ahead of the
// completion event. Late attachers receive the same pair, so a settled
// outcome stays observable no matter when a subscriber arrives. An error
// terminal discards the recorded value and forwards the error alone.
type AsyncSubject struct {
	core  subjectCore
	value interface{}
	has   bool
}

// NewAsyncSubject returns a new instance of an AsyncSubject.
func NewAsyncSubject() *AsyncSubject {
	return &AsyncSubject{core: newSubjectCore()}
}

// ID returns the unique assigned id of the subject.
func (a *AsyncSubject) ID() string {
	return a.core.id.String()
}

// Next records giving value as the pending outcome without forwarding it;
// each push replaces the previous and only completion publishes the final
// one. Values pushed after the subject terminated are dropped and counted
// as violations.
func (a *AsyncSubject) Next(data interface{}) {
	a.core.ml.Lock()
	if a.core.guard.Stopped() {
		a.core.ml.Unlock()
		a.core.noteLate(OnNext)
		return
	}
	a.value = data
	a.has = true
	a.core.ml.Unlock()
}

// Error terminates the subject with giving error, discarding any recorded
// value.
func (a *AsyncSubject) Error(err error) {
	a.core.emitTerminal(Error(err), nil)
}

// Complete terminates the subject, forwarding the final recorded value
// ahead of the completion event to all current subscribers and thereafter
// to every late attacher. Completing without a recorded value forwards the
// completion event alone.
func (a *AsyncSubject) Complete() {
	a.core.emitTerminal(Completed(), a.replayEvents)
}

// Subscribe attaches giving handler and returns its subscription handle.
// The handler stays silent until the subject terminates.
func (a *AsyncSubject) Subscribe(handler EventHandler) Disposable {
	return a.core.attach(handler, a.replayEvents)
}

// SubscribeWith behaves as Subscribe with per-shape callbacks, any of which
// may be nil.
func (a *AsyncSubject) SubscribeWith(onNext func(interface{}), onError func(error), onComplete func()) Disposable {
	return a.Subscribe(HandlerWith(onNext, onError, onComplete))
}

// SubscribeInto behaves as Subscribe and hands the subscription to giving bag.
func (a *AsyncSubject) SubscribeInto(bag *DisposeBag, handler EventHandler) Disposable {
	sub := a.Subscribe(handler)
	if bag != nil {
		bag.Add(sub)
	}
	return sub
}

// AsStream returns a cold Stream view of the subject: each subscription to
// the returned stream attaches to this same underlying subject, outcome
// replay included.
func (a *AsyncSubject) AsStream() *Stream {
	return a.core.asStream(a.replayEvents)
}

// Terminated returns true/false whether the subject has forwarded its
// terminal event.
func (a *AsyncSubject) Terminated() bool {
	return a.core.guard.Ended()
}

// Len returns the current count of attached subscribers.
func (a *AsyncSubject) Len() int {
	return a.core.size()
}

// replayEvents yields the final recorded value once the subject completed
// with one. Runs under the subject lock; before termination it yields
// nothing, since a pending value stays unobservable until completion.
func (a *AsyncSubject) replayEvents() []Event {
	if !a.core.guard.Stopped() {
		return nil
	}
	if a.core.term.Type == OnCompleted && a.has {
		return []Event{Next(a.value)}
	}
	return nil
}
