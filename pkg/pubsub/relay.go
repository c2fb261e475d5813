package pubsub

import "sync"

// Relay is a Subject that remembers its latest value.
// New subscribers receive the current value immediately, then every change.
type Relay[T any] struct {
	subject *Subject[T]
	mu      sync.RWMutex
	value   T
}

// NewRelay creates a relay holding initial.
func NewRelay[T any](initial T) *Relay[T] {
	return &Relay[T]{
		subject: NewSubject[T](),
		value:   initial,
	}
}

// Value returns the current value.
func (r *Relay[T]) Value() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Subscribe replays the current value to fn and registers it for future changes.
func (r *Relay[T]) Subscribe(fn func(T)) (cancel func()) {
	cancel = r.subject.Subscribe(fn)
	fn(r.Value())
	return cancel
}

// Publish stores v and delivers it to every subscriber.
// Single-writer: publishes must not race with each other.
func (r *Relay[T]) Publish(v T) {
	r.mu.Lock()
	r.value = v
	r.mu.Unlock()

	r.subject.Publish(v)
}

// SubscriberCount returns the number of active subscribers.
func (r *Relay[T]) SubscriberCount() int {
	return r.subject.SubscriberCount()
}
