package pubsub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubject_OrderedDelivery(t *testing.T) {
	s := NewSubject[int]()

	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })
	s.Subscribe(func(v int) { got = append(got, "c") })

	s.Publish(1)
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSubject_NoReplay(t *testing.T) {
	s := NewSubject[string]()
	s.Publish("missed")

	var got []string
	s.Subscribe(func(v string) { got = append(got, v) })
	require.Empty(t, got)

	s.Publish("seen")
	require.Equal(t, []string{"seen"}, got)
}

func TestSubject_Cancel(t *testing.T) {
	s := NewSubject[int]()

	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })
	require.Equal(t, 1, s.SubscriberCount())

	s.Publish(1)
	cancel()
	cancel() // idempotent
	s.Publish(2)

	require.Equal(t, []int{1}, got)
	require.Equal(t, 0, s.SubscriberCount())
}

func TestSubject_CancelFromCallback(t *testing.T) {
	s := NewSubject[int]()

	var got []int
	var cancel func()
	cancel = s.Subscribe(func(v int) {
		got = append(got, v)
		cancel()
	})

	s.Publish(1)
	s.Publish(2)
	require.Equal(t, []int{1}, got)
}

func TestRelay_ReplaysCurrentValue(t *testing.T) {
	r := NewRelay("initial")

	var first []string
	r.Subscribe(func(v string) { first = append(first, v) })
	require.Equal(t, []string{"initial"}, first)

	r.Publish("changed")

	var second []string
	r.Subscribe(func(v string) { second = append(second, v) })

	require.Equal(t, []string{"initial", "changed"}, first)
	require.Equal(t, []string{"changed"}, second)
	require.Equal(t, "changed", r.Value())
}

func TestRelay_IndependentSubscriptions(t *testing.T) {
	r := NewRelay(0)

	var a, b []int
	cancelA := r.Subscribe(func(v int) { a = append(a, v) })
	r.Subscribe(func(v int) { b = append(b, v) })

	r.Publish(1)
	cancelA()
	r.Publish(2)

	// Resubscribing restarts from the current value.
	var again []int
	r.Subscribe(func(v int) { again = append(again, v) })

	require.Equal(t, []int{0, 1}, a)
	require.Equal(t, []int{0, 1, 2}, b)
	require.Equal(t, []int{2}, again)
	require.Equal(t, 2, r.SubscriberCount())
}
