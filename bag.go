package streamkit

import (
	"sync"

	"github.com/gokit/xid"
)

//***********************************
//  DisposeBag
//***********************************

// DisposeBag implements an aggregate owner for many Disposable handles,
// releasing all of them on it's own teardown. A bag is how an owning
// object scopes the lifetime of its subscriptions to its own without
// per-subscription bookkeeping: store every handle in the bag and dispose
// the bag once during teardown.
type DisposeBag struct {
	id       xid.ID
	bl       sync.Mutex
	disposed bool
	handles  []Disposable
}

// NewDisposeBag returns a new instance of a DisposeBag.
func NewDisposeBag() *DisposeBag {
	return &DisposeBag{id: xid.New()}
}

// ID returns the unique identity of giving bag.
func (b *DisposeBag) ID() string {
	return b.id.String()
}

// Add stores giving handle for release on the bag's teardown. If the bag
// was already disposed the handle is disposed immediately instead of being
// stored, so no resource silently outlives the bag.
func (b *DisposeBag) Add(d Disposable) {
	if d == nil {
		return
	}

	b.bl.Lock()
	if b.disposed {
		b.bl.Unlock()
		d.Dispose()
		return
	}
	b.handles = append(b.handles, d)
	b.bl.Unlock()
}

// Dispose tears the bag down: the first caller extracts the stored handles
// and marks the bag disposed under it's lock, then disposes each extracted
// handle outside the lock, so release actions may safely touch the bag
// again. Each handle's release action runs exactly once; subsequent Dispose
// calls do nothing.
func (b *DisposeBag) Dispose() {
	b.bl.Lock()
	if b.disposed {
		b.bl.Unlock()
		return
	}
	b.disposed = true
	extracted := b.handles
	b.handles = nil
	b.bl.Unlock()

	LogMsg("dispose bag torn down").String("bag", b.id.String()).Int("handles", len(extracted)).Write(DEBUG, diagnosticLogs())

	for _, d := range extracted {
		d.Dispose()
	}
}

// Disposed returns true/false if giving bag has been torn down.
func (b *DisposeBag) Disposed() bool {
	b.bl.Lock()
	defer b.bl.Unlock()
	return b.disposed
}

// Len returns the count of handles currently stored in giving bag.
func (b *DisposeBag) Len() int {
	b.bl.Lock()
	defer b.bl.Unlock()
	return len(b.handles)
}
