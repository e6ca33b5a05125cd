package streamkit_test

import (
	"testing"

	"github.com/gokit/errors"
	"github.com/stretchr/testify/require"

	"github.com/gokit/streamkit"
	"github.com/gokit/streamkit/mocks"
)

func TestReplaySubjectReplaysWindow(t *testing.T) {
	subject := streamkit.NewReplaySubject(3)
	for n := 1; n <= 5; n++ {
		subject.Next(n)
	}

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)
	require.Equal(t, []interface{}{3, 4, 5}, rec.Values())

	subject.Next(6)
	require.Equal(t, []interface{}{3, 4, 5, 6}, rec.Values())
}

func TestReplaySubjectBelowCap(t *testing.T) {
	subject := streamkit.NewReplaySubject(3)
	subject.Next("a")
	subject.Next("b")

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)

	require.Equal(t, []interface{}{"a", "b"}, rec.Values())
}

func TestReplaySubjectFreshAttach(t *testing.T) {
	subject := streamkit.NewReplaySubject(3)

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)
	require.Equal(t, 0, rec.Len())

	subject.Next("a")
	require.Equal(t, []interface{}{"a"}, rec.Values())
}

func TestReplaySubjectEvictsOldest(t *testing.T) {
	subject := streamkit.NewReplaySubject(1)
	subject.Next("a")
	subject.Next("b")
	subject.Next("c")

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)

	require.Equal(t, []interface{}{"c"}, rec.Values())
}

func TestUnboundedReplaySubject(t *testing.T) {
	subject := streamkit.NewUnboundedReplaySubject()
	for n := 1; n <= 10; n++ {
		subject.Next(n)
	}

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)

	require.Equal(t, 10, len(rec.Values()))
	require.Equal(t, 1, rec.Values()[0])
	require.Equal(t, 10, rec.Values()[9])
}

func TestReplaySubjectMulticast(t *testing.T) {
	subject := streamkit.NewReplaySubject(2)
	require.NotEmpty(t, subject.ID())

	first := mocks.NewEventRecorder()
	subject.Subscribe(first.Handle)
	subject.Next("a")

	second := mocks.NewEventRecorder()
	subject.Subscribe(second.Handle)
	require.Equal(t, 2, subject.Len())

	subject.Next("b")

	require.Equal(t, []interface{}{"a", "b"}, first.Values())
	require.Equal(t, []interface{}{"a", "b"}, second.Values())
}

func TestReplaySubjectLateAttachReplaysThenTerminal(t *testing.T) {
	subject := streamkit.NewReplaySubject(2)
	subject.Next(1)
	subject.Next(2)
	subject.Next(3)
	subject.Complete()
	require.True(t, subject.Terminated())

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)
	require.Equal(t, 0, subject.Len())

	events := rec.Events()
	require.Equal(t, 3, len(events))
	require.Equal(t, []interface{}{2, 3}, rec.Values())
	require.True(t, events[2].Terminal())
}

func TestReplaySubjectLateAttachReplaysThenError(t *testing.T) {
	failure := errors.New("feed collapsed")

	subject := streamkit.NewReplaySubject(4)
	subject.Next("a")
	subject.Error(failure)

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)

	require.Equal(t, []interface{}{"a"}, rec.Values())
	require.Equal(t, []error{failure}, rec.Errs())
}

func TestReplaySubjectLateProduceKeepsWindow(t *testing.T) {
	before := streamkit.Violations()

	subject := streamkit.NewReplaySubject(2)
	subject.Next("a")
	subject.Complete()

	subject.Next("ignored")
	require.Equal(t, before+1, streamkit.Violations())

	rec := mocks.NewEventRecorder()
	subject.Subscribe(rec.Handle)

	require.Equal(t, []interface{}{"a"}, rec.Values())
	require.Equal(t, 1, rec.Terminals())
}

func TestReplaySubjectDisposeStopsDelivery(t *testing.T) {
	before := streamkit.Violations()

	subject := streamkit.NewReplaySubject(2)
	subject.Next("a")

	rec := mocks.NewEventRecorder()
	handle := subject.Subscribe(rec.Handle)
	handle.Dispose()
	require.Equal(t, 0, subject.Len())

	subject.Next("b")

	require.Equal(t, []interface{}{"a"}, rec.Values())
	require.Equal(t, before, streamkit.Violations())
}

func TestReplaySubjectSubscribeWith(t *testing.T) {
	subject := streamkit.NewReplaySubject(2)
	subject.Next(7)

	var got interface{}
	var completed bool
	subject.SubscribeWith(func(v interface{}) {
		got = v
	}, nil, func() {
		completed = true
	})
	subject.Complete()

	require.Equal(t, 7, got)
	require.True(t, completed)
}

func TestReplaySubjectSubscribeInto(t *testing.T) {
	subject := streamkit.NewReplaySubject(2)

	bag := streamkit.NewDisposeBag()
	rec := mocks.NewEventRecorder()
	subject.SubscribeInto(bag, rec.Handle)

	subject.Next("a")
	bag.Dispose()
	subject.Next("b")

	require.Equal(t, []interface{}{"a"}, rec.Values())
	require.Equal(t, 0, subject.Len())
}

func TestReplaySubjectAsStreamReplays(t *testing.T) {
	subject := streamkit.NewReplaySubject(2)
	subject.Next(1)
	subject.Next(2)

	rec := mocks.NewEventRecorder()
	subject.AsStream().Subscribe(rec.Handle)

	require.Equal(t, []interface{}{1, 2}, rec.Values())

	subject.Next(3)
	require.Equal(t, []interface{}{1, 2, 3}, rec.Values())
}

func TestReplaySubjectAttachDuringEmissions(t *testing.T) {
	subject := streamkit.NewReplaySubject(4)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 1; n <= 200; n++ {
			subject.Next(n)
		}
	}()

	var recorders []*mocks.EventRecorder
	for i := 0; i < 8; i++ {
		rec := mocks.NewEventRecorder()
		subject.Subscribe(rec.Handle)
		recorders = append(recorders, rec)
	}
	<-done

	// the replayed window and the live traffic following it must form one
	// consecutive run with no gap, duplicate or reordering at the seam.
	for _, rec := range recorders {
		values := rec.Values()
		require.NotEmpty(t, values)
		require.Equal(t, 200, values[len(values)-1])

		for i := 1; i < len(values); i++ {
			require.Equal(t, values[i-1].(int)+1, values[i].(int), "expected consecutive values, got %v", values)
		}
	}
}

func TestNewReplaySubjectRejectsNonPositiveSize(t *testing.T) {
	require.Panics(t, func() {
		streamkit.NewReplaySubject(0)
	})
	require.Panics(t, func() {
		streamkit.NewReplaySubject(-1)
	})
}
