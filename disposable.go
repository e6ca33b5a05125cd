package streamkit

//***********************************
//  NopDisposable
//***********************************

// NopDisposable implements the Disposable interface with no release
// action, it can be used as stand-in wherever a handle is required but
// no resource was acquired.
type NopDisposable struct{}

// Dispose does nothing with giving call, it implements the
// streamkit.Disposable Dispose method.
func (NopDisposable) Dispose() {}

//***********************************
//  DisposeAction
//***********************************

// DisposeAction implements the Disposable interface around a release
// function which is guaranteed to run exactly once regardless of how many
// threads race their Dispose calls.
type DisposeAction struct {
	guard  TerminalGuard
	action func()
}

// NewDisposeAction returns a new instance of DisposeAction wrapping giving
// release function.
func NewDisposeAction(action func()) *DisposeAction {
	return &DisposeAction{action: action}
}

// Dispose runs the release action on first call, subsequent or racing
// calls do nothing.
func (d *DisposeAction) Dispose() {
	if !d.guard.Stop() {
		return
	}
	if d.action != nil {
		d.action()
		d.action = nil
	}
}

//***********************************
//  CompositeDisposable
//***********************************

// CompositeDisposable implements the Disposable interface over a fixed set
// of child handles which are released together as one unit on the first
// Dispose call.
type CompositeDisposable struct {
	guard    TerminalGuard
	children []Disposable
}

// NewCompositeDisposable returns a new instance of CompositeDisposable
// owning giving children.
func NewCompositeDisposable(children ...Disposable) *CompositeDisposable {
	return &CompositeDisposable{children: children}
}

// Dispose disposes every child exactly once, subsequent or racing calls
// do nothing.
func (c *CompositeDisposable) Dispose() {
	if !c.guard.Stop() {
		return
	}
	for _, child := range c.children {
		if child != nil {
			child.Dispose()
		}
	}
	c.children = nil
}
