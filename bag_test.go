package streamkit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gokit/streamkit"
	"github.com/gokit/streamkit/mocks"
)

func TestDisposeBagTeardown(t *testing.T) {
	first := mocks.NewCountingDisposable()
	second := mocks.NewCountingDisposable()

	bag := streamkit.NewDisposeBag()
	require.NotEmpty(t, bag.ID())

	bag.Add(first)
	bag.Add(second)
	require.Equal(t, 2, bag.Len())
	require.False(t, bag.Disposed())

	bag.Dispose()
	require.True(t, bag.Disposed())
	require.Equal(t, 0, bag.Len())
	require.Equal(t, int64(1), first.Disposals())
	require.Equal(t, int64(1), second.Disposals())

	bag.Dispose()
	require.Equal(t, int64(1), first.Disposals())
	require.Equal(t, int64(1), second.Disposals())
}

func TestDisposeBagPostDisposalInsert(t *testing.T) {
	bag := streamkit.NewDisposeBag()
	bag.Dispose()

	late := mocks.NewCountingDisposable()
	bag.Add(late)

	require.Equal(t, int64(1), late.Disposals())
	require.Equal(t, 0, bag.Len())
}

func TestDisposeBagNilInsert(t *testing.T) {
	bag := streamkit.NewDisposeBag()
	bag.Add(nil)
	require.Equal(t, 0, bag.Len())

	bag.Dispose()
	bag.Add(nil)
}

func TestDisposeBagReentrantTeardown(t *testing.T) {
	bag := streamkit.NewDisposeBag()
	inner := mocks.NewCountingDisposable()

	bag.Add(streamkit.NewDisposeAction(func() {
		bag.Dispose()
		bag.Add(inner)
	}))

	bag.Dispose()
	require.True(t, bag.Disposed())
	require.Equal(t, int64(1), inner.Disposals())
}
