package streamkit

import (
	"sync/atomic"
)

const (
	guardOpen uint64 = iota
	guardStopped
	guardEnded
)

//***********************************
//  TerminalGuard
//***********************************

// TerminalGuard implements the once-only open to stopped latch used by
// every subscriber-facing adapter to enforce the terminal contract: at
// most one terminal event per subscription, no events after it. The latch
// records which side closed it, a disposal (Stop) or a terminal event
// (End), so late arrivals can be told apart: events dropped behind a
// disposal are a closed race, events dropped behind a terminal indicate a
// misbehaving producer. The zero value is an open guard.
type TerminalGuard struct {
	state uint64
}

// Stop attempts the open to stopped transition on behalf of a disposal,
// returning true only for the single caller winning the swap. Every losing
// caller observes false and must forward nothing further.
func (g *TerminalGuard) Stop() bool {
	return atomic.CompareAndSwapUint64(&g.state, guardOpen, guardStopped)
}

// End attempts the open to stopped transition on behalf of a terminal
// event, returning true only for the single caller winning the swap.
func (g *TerminalGuard) End() bool {
	return atomic.CompareAndSwapUint64(&g.state, guardOpen, guardEnded)
}

// Stopped returns true/false if giving guard has left its open state.
func (g *TerminalGuard) Stopped() bool {
	return atomic.LoadUint64(&g.state) != guardOpen
}

// Ended returns true/false if giving guard was closed by a terminal event
// rather than a disposal.
func (g *TerminalGuard) Ended() bool {
	return atomic.LoadUint64(&g.state) == guardEnded
}

//***********************************
//  AtomicBool
//***********************************

// AtomicBool implements a safe atomic boolean.
type AtomicBool struct {
	flag int32
}

// IsTrue returns true/false if giving atomic bool is in true state.
func (a *AtomicBool) IsTrue() bool {
	return atomic.LoadInt32(&a.flag) == 1
}

// Off sets the atomic bool as false.
func (a *AtomicBool) Off() {
	atomic.StoreInt32(&a.flag, 0)
}

// On sets the atomic bool as true.
func (a *AtomicBool) On() {
	atomic.StoreInt32(&a.flag, 1)
}

//***********************************
//  AtomicCounter
//***********************************

// AtomicCounter implements a wrapper around a int64.
type AtomicCounter struct {
	count int64
}

// Inc increments counter by one.
func (a *AtomicCounter) Inc() {
	atomic.AddInt64(&a.count, 1)
}

// IncBy increments counter by provided value.
func (a *AtomicCounter) IncBy(c int64) {
	atomic.AddInt64(&a.count, c)
}

// Get returns giving counter count value.
func (a *AtomicCounter) Get() int64 {
	return atomic.LoadInt64(&a.count)
}
