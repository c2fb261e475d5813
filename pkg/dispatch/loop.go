// Package dispatch provides the logical threads that own flow state.
//
// Work produced on background goroutines (network results) is posted as a
// closure and executed by whoever drives the Loop, between input events.
package dispatch

import (
	"context"
	"sync"

	"github.com/aretw0/waitlist/pkg/ports"
)

const defaultBuffer = 16

// Loop is a serialized task queue. It implements ports.Dispatcher.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

var _ ports.Dispatcher = (*Loop)(nil)

// NewLoop creates a Loop with a small buffer.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), defaultBuffer),
		done:  make(chan struct{}),
	}
}

// Dispatch enqueues fn. It blocks while the buffer is full and drops fn once the
// loop is closed, so posting goroutines never hang after shutdown.
func (l *Loop) Dispatch(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Tasks exposes the queue for callers that multiplex it with other sources.
func (l *Loop) Tasks() <-chan func() {
	return l.tasks
}

// Done is closed when the loop is closed.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run executes tasks until ctx is cancelled or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Drain executes every task currently queued without blocking.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops the loop. Pending tasks are discarded. Close is idempotent.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}
