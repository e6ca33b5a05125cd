package streamkit_test

import (
	"testing"

	"github.com/gokit/errors"
	"github.com/stretchr/testify/require"

	"github.com/gokit/streamkit"
	"github.com/gokit/streamkit/mocks"
)

func TestCompletableCompleted(t *testing.T) {
	res := mocks.NewCountingDisposable()
	completable := streamkit.NewCompletable(func(sub streamkit.CompletableSubscriber) streamkit.Disposable {
		sub.Complete()
		return res
	})

	var completed bool
	completable.Subscribe(func() {
		completed = true
	}, nil)

	require.True(t, completed)
	require.Equal(t, int64(1), res.Disposals())
}

func TestCompletableDone(t *testing.T) {
	var completed bool
	streamkit.CompletableDone().Subscribe(func() {
		completed = true
	}, nil)

	require.True(t, completed)
}

func TestCompletableFailed(t *testing.T) {
	failure := errors.New("commit failed")

	var got error
	streamkit.CompletableFailed(failure).Subscribe(nil, func(err error) {
		got = err
	})

	require.Equal(t, failure, got)
}

func TestCompletableDoubleCompleteCounted(t *testing.T) {
	before := streamkit.Violations()

	var completions int
	streamkit.NewCompletable(func(sub streamkit.CompletableSubscriber) streamkit.Disposable {
		sub.Complete()
		sub.Complete()
		return streamkit.NopDisposable{}
	}).Subscribe(func() {
		completions++
	}, nil)

	require.Equal(t, 1, completions)
	require.Equal(t, before+1, streamkit.Violations())
}

func TestCompletableAsStream(t *testing.T) {
	rec := mocks.NewEventRecorder()
	streamkit.CompletableDone().AsStream().Subscribe(rec.Handle)

	require.Empty(t, rec.Values())
	require.Equal(t, 1, rec.Terminals())
	require.Equal(t, streamkit.OnCompleted, rec.Events()[0].Type)
}

func TestNewCompletableNilPanics(t *testing.T) {
	require.Panics(t, func() {
		streamkit.NewCompletable(nil)
	})
}
