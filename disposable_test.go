package streamkit_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gokit/streamkit"
	"github.com/gokit/streamkit/mocks"
)

func TestDisposeActionRunsOnce(t *testing.T) {
	var runs int
	action := streamkit.NewDisposeAction(func() {
		runs++
	})

	action.Dispose()
	action.Dispose()
	action.Dispose()
	require.Equal(t, 1, runs)
}

func TestDisposeActionRacingDisposes(t *testing.T) {
	var runs streamkit.AtomicCounter
	action := streamkit.NewDisposeAction(func() {
		runs.Inc()
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			action.Dispose()
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), runs.Get())
}

func TestDisposeActionNilAction(t *testing.T) {
	action := streamkit.NewDisposeAction(nil)
	action.Dispose()
	action.Dispose()
}

func TestCompositeDisposable(t *testing.T) {
	first := mocks.NewCountingDisposable()
	second := mocks.NewCountingDisposable()

	composite := streamkit.NewCompositeDisposable(first, nil, second)
	composite.Dispose()
	composite.Dispose()

	require.Equal(t, int64(1), first.Disposals())
	require.Equal(t, int64(1), second.Disposals())
}

func TestNopDisposable(t *testing.T) {
	var handle streamkit.Disposable = streamkit.NopDisposable{}
	handle.Dispose()
	handle.Dispose()
}
