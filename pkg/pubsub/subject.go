// Package pubsub provides synchronous, ordered observables.
//
// Subject broadcasts values to the listeners subscribed at publish time.
// Relay additionally holds a current value and replays it to every new subscriber.
// Listeners run on the publishing goroutine, in subscription order.
package pubsub

import "sync"

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Subject is a hot broadcast of values without replay.
type Subject[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener[T]
}

// NewSubject creates an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers fn and returns a function that removes it.
// Cancel is idempotent.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every current listener, in subscription order.
// Listeners may subscribe or cancel from within the callback.
func (s *Subject[T]) Publish(v T) {
	for _, l := range s.snapshot() {
		l.fn(v)
	}
}

func (s *Subject[T]) snapshot() []listener[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]listener[T](nil), s.listeners...)
}

// SubscriberCount returns the number of active listeners.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}
