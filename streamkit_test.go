package streamkit_test

import (
	"testing"

	"github.com/gokit/errors"
	"github.com/stretchr/testify/require"

	"github.com/gokit/streamkit"
	"github.com/gokit/streamkit/mocks"
)

func TestEventShapes(t *testing.T) {
	next := streamkit.Next("data")
	require.Equal(t, streamkit.OnNext, next.Type)
	require.Equal(t, "data", next.Data)
	require.False(t, next.Terminal())

	failure := errors.New("bad")
	errEvent := streamkit.Error(failure)
	require.Equal(t, streamkit.OnError, errEvent.Type)
	require.Equal(t, failure, errEvent.Err)
	require.True(t, errEvent.Terminal())

	done := streamkit.Completed()
	require.Equal(t, streamkit.OnCompleted, done.Type)
	require.True(t, done.Terminal())
}

func TestEventTypeString(t *testing.T) {
	require.Equal(t, "NEXT", streamkit.OnNext.String())
	require.Equal(t, "ERROR", streamkit.OnError.String())
	require.Equal(t, "COMPLETED", streamkit.OnCompleted.String())
	require.Equal(t, "UNKNOWN", streamkit.EventType(0).String())
}

func TestHandlerWith(t *testing.T) {
	var nexts []interface{}
	var failures []error
	var completions int

	handler := streamkit.HandlerWith(func(v interface{}) {
		nexts = append(nexts, v)
	}, func(err error) {
		failures = append(failures, err)
	}, func() {
		completions++
	})

	failure := errors.New("bad")
	handler(streamkit.Next(1))
	handler(streamkit.Error(failure))
	handler(streamkit.Completed())

	require.Equal(t, []interface{}{1}, nexts)
	require.Equal(t, []error{failure}, failures)
	require.Equal(t, 1, completions)
}

func TestHandlerWithNilCallbacks(t *testing.T) {
	handler := streamkit.HandlerWith(nil, nil, nil)
	handler(streamkit.Next(1))
	handler(streamkit.Error(errors.New("bad")))
	handler(streamkit.Completed())
}

func TestUseLogsInstallsAndRestores(t *testing.T) {
	logs := mocks.NewCapturingLogs()
	streamkit.UseLogs(logs)

	subject := streamkit.NewPublishSubject()
	subject.Complete()
	subject.Next("late")

	require.True(t, logs.HasLevel(streamkit.WARN))
	captured := logs.Len()

	streamkit.UseLogs(nil)
	subject.Next("later still")
	require.Equal(t, captured, logs.Len())
}
