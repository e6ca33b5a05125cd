package streamkit_test

import (
	"testing"

	"github.com/gokit/errors"
	"github.com/stretchr/testify/require"

	"github.com/gokit/streamkit"
	"github.com/gokit/streamkit/mocks"
)

func TestMaybeResolved(t *testing.T) {
	var got interface{}
	var empty bool

	streamkit.MaybeJust(7).Subscribe(func(v interface{}) {
		got = v
	}, func() {
		empty = true
	}, nil)

	require.Equal(t, 7, got)
	require.False(t, empty)
}

func TestMaybeEmpty(t *testing.T) {
	var got interface{}
	var empty bool

	streamkit.MaybeEmpty().Subscribe(func(v interface{}) {
		got = v
	}, func() {
		empty = true
	}, nil)

	require.Nil(t, got)
	require.True(t, empty)
}

func TestMaybeFailed(t *testing.T) {
	failure := errors.New("missing record")

	var got error
	var empty bool
	streamkit.MaybeFailed(failure).Subscribe(nil, func() {
		empty = true
	}, func(err error) {
		got = err
	})

	require.Equal(t, failure, got)
	require.False(t, empty)
}

func TestMaybeResolvedAsStream(t *testing.T) {
	rec := mocks.NewEventRecorder()
	streamkit.MaybeJust("v").AsStream().Subscribe(rec.Handle)

	require.Equal(t, []interface{}{"v"}, rec.Values())
	require.Equal(t, 1, rec.Terminals())
}

func TestMaybeReleasesResource(t *testing.T) {
	res := mocks.NewCountingDisposable()
	streamkit.NewMaybe(func(sub streamkit.MaybeSubscriber) streamkit.Disposable {
		sub.Complete()
		return res
	}).Subscribe(nil, nil, nil)

	require.Equal(t, int64(1), res.Disposals())
}

func TestMaybeExcessResolveCounted(t *testing.T) {
	before := streamkit.Violations()

	var values []interface{}
	streamkit.NewMaybe(func(sub streamkit.MaybeSubscriber) streamkit.Disposable {
		sub.Resolve("one")
		sub.Resolve("two")
		return streamkit.NopDisposable{}
	}).Subscribe(func(v interface{}) {
		values = append(values, v)
	}, nil, nil)

	require.Equal(t, []interface{}{"one"}, values)
	require.Equal(t, before+2, streamkit.Violations())
}

func TestNewMaybeNilPanics(t *testing.T) {
	require.Panics(t, func() {
		streamkit.NewMaybe(nil)
	})
}
