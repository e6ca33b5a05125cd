package streamkit

import "reflect"

//***************************************************************************
// Canned sources
//***************************************************************************

// Just returns a cold Stream which, for each subscription, synchronously
// emits giving values in order and completes.
func Just(values ...interface{}) *Stream {
	return Create(func(sub Subscriber) Disposable {
		for _, value := range values {
			sub.Next(value)
		}
		sub.Complete()
		return NopDisposable{}
	})
}

// Failed returns a cold Stream which terminates every subscription
// immediately with giving error.
func Failed(err error) *Stream {
	return Create(func(sub Subscriber) Disposable {
		sub.Error(err)
		return NopDisposable{}
	})
}

// Empty returns a cold Stream which completes every subscription
// immediately without emitting a value.
func Empty() *Stream {
	return Create(func(sub Subscriber) Disposable {
		sub.Complete()
		return NopDisposable{}
	})
}

// Never returns a cold Stream which emits nothing and never terminates;
// disposal is the only way out of its subscriptions.
func Never() *Stream {
	return Create(func(Subscriber) Disposable {
		return NopDisposable{}
	})
}

// FromChan returns a cold Stream pumping giving channel into each
// subscription from a dedicated goroutine. The source must be a channel
// open for receiving, else FromChan panics. A subscription completes when
// the channel closes; disposing it stops the pump without closing or
// draining the caller's channel.
func FromChan(source interface{}) *Stream {
	val := reflect.ValueOf(source)
	if val.Kind() != reflect.Chan || val.Type().ChanDir()&reflect.RecvDir == 0 {
		panic("streamkit: FromChan requires a receivable channel")
	}

	return Create(func(sub Subscriber) Disposable {
		done := make(chan struct{})

		go func() {
			cases := []reflect.SelectCase{
				{Dir: reflect.SelectRecv, Chan: val},
				{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(done)},
			}

			for {
				chosen, received, ok := reflect.Select(cases)
				if chosen == 1 {
					return
				}
				if !ok {
					sub.Complete()
					return
				}
				sub.Next(received.Interface())
			}
		}()

		return NewDisposeAction(func() {
			close(done)
		})
	})
}
