package platform

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Dispatcher.Do once the UI loop has stopped.
var ErrStopped = errors.New("event loop stopped")

// Dispatcher queues functions onto the UI goroutine. The event loop drains
// Chan between X events.
type Dispatcher struct {
	ch       chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a dispatcher with a small queue.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		ch:   make(chan func(), 16),
		done: make(chan struct{}),
	}
}

// Chan is read by the event loop.
func (d *Dispatcher) Chan() <-chan func() { return d.ch }

// Do runs fn on the UI goroutine and waits for it to return.
func (d *Dispatcher) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case d.ch <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return ErrStopped
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		// fn may still have run before the loop stopped.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Stop fails pending and future Do calls.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}
