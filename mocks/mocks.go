package mocks

import (
	"strings"
	"sync"
	"time"

	"github.com/gokit/streamkit"
)

//****************************************
// Test Event Recorder
//****************************************

// EventRecorder collects every event delivered to it, safe against
// concurrent producers. Pass Handle as the subscription's EventHandler.
type EventRecorder struct {
	ml     sync.Mutex
	events []streamkit.Event
}

// NewEventRecorder returns a new instance of EventRecorder.
func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

// Handle records giving event.
func (r *EventRecorder) Handle(e streamkit.Event) {
	r.ml.Lock()
	r.events = append(r.events, e)
	r.ml.Unlock()
}

// Events returns a copy of all recorded events in delivery order.
func (r *EventRecorder) Events() []streamkit.Event {
	r.ml.Lock()
	out := make([]streamkit.Event, len(r.events))
	copy(out, r.events)
	r.ml.Unlock()
	return out
}

// Values returns the payloads of all recorded OnNext events in delivery order.
func (r *EventRecorder) Values() []interface{} {
	r.ml.Lock()
	var out []interface{}
	for _, e := range r.events {
		if e.Type == streamkit.OnNext {
			out = append(out, e.Data)
		}
	}
	r.ml.Unlock()
	return out
}

// Errs returns the errors of all recorded OnError events in delivery order.
func (r *EventRecorder) Errs() []error {
	r.ml.Lock()
	var out []error
	for _, e := range r.events {
		if e.Type == streamkit.OnError {
			out = append(out, e.Err)
		}
	}
	r.ml.Unlock()
	return out
}

// Terminals returns the count of recorded terminal events.
func (r *EventRecorder) Terminals() int {
	r.ml.Lock()
	var n int
	for _, e := range r.events {
		if e.Terminal() {
			n++
		}
	}
	r.ml.Unlock()
	return n
}

// Len returns the count of all recorded events.
func (r *EventRecorder) Len() int {
	r.ml.Lock()
	n := len(r.events)
	r.ml.Unlock()
	return n
}

// WaitFor blocks until at least n events were recorded or giving timeout
// elapsed, returning true/false respectively.
func (r *EventRecorder) WaitFor(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for r.Len() < n {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}

// WaitForTerminal blocks until a terminal event was recorded or giving
// timeout elapsed, returning true/false respectively.
func (r *EventRecorder) WaitForTerminal(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for r.Terminals() == 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}

//****************************************
// Test Logs Implementation
//****************************************

// CapturingLogs implements streamkit.Logs, retaining every emitted entry
// for inspection.
type CapturingLogs struct {
	ml      sync.Mutex
	levels  []streamkit.Level
	entries []string
}

// NewCapturingLogs returns a new instance of CapturingLogs.
func NewCapturingLogs() *CapturingLogs {
	return &CapturingLogs{}
}

// Emit stores giving level and message.
func (c *CapturingLogs) Emit(l streamkit.Level, msg streamkit.LogMessage) {
	c.ml.Lock()
	c.levels = append(c.levels, l)
	c.entries = append(c.entries, msg.Message())
	c.ml.Unlock()
}

// Len returns the count of captured entries.
func (c *CapturingLogs) Len() int {
	c.ml.Lock()
	n := len(c.entries)
	c.ml.Unlock()
	return n
}

// Has returns true/false if any captured entry contains giving substring.
func (c *CapturingLogs) Has(substr string) bool {
	c.ml.Lock()
	defer c.ml.Unlock()
	for _, entry := range c.entries {
		if strings.Contains(entry, substr) {
			return true
		}
	}
	return false
}

// HasLevel returns true/false if any entry was captured at giving level.
func (c *CapturingLogs) HasLevel(l streamkit.Level) bool {
	c.ml.Lock()
	defer c.ml.Unlock()
	for _, level := range c.levels {
		if level == l {
			return true
		}
	}
	return false
}

//****************************************
// Test Disposable Implementation
//****************************************

// CountingDisposable implements streamkit.Disposable, counting how many
// times its release action ran.
type CountingDisposable struct {
	count streamkit.AtomicCounter
}

// NewCountingDisposable returns a new instance of CountingDisposable.
func NewCountingDisposable() *CountingDisposable {
	return &CountingDisposable{}
}

// Dispose records one release.
func (c *CountingDisposable) Dispose() {
	c.count.Inc()
}

// Disposals returns the count of releases performed.
func (c *CountingDisposable) Disposals() int64 {
	return c.count.Get()
}
