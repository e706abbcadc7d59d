package platform

import (
	"context"
	"errors"
	"testing"
	"time"
)

// drain runs queued functions until stop is closed, like the event loop.
func drain(d *Dispatcher, stop <-chan struct{}) {
	for {
		select {
		case fn := <-d.Chan():
			fn()
		case <-stop:
			return
		}
	}
}

func TestDispatcherDoRunsOnLoop(t *testing.T) {
	d := NewDispatcher()
	stop := make(chan struct{})
	defer close(stop)
	go drain(d, stop)

	ran := false
	if err := d.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Fatalf("expected fn to have run when Do returned")
	}
}

func TestDispatcherStopFailsCalls(t *testing.T) {
	d := NewDispatcher()
	d.Stop()
	d.Stop()

	// Fill the queue so the send cannot win the select.
	for i := 0; i < cap(d.ch); i++ {
		d.ch <- func() {}
	}
	err := d.Do(context.Background(), func() {})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestDispatcherContextCanceled(t *testing.T) {
	d := NewDispatcher()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Nothing drains the queue, so Do waits on completion until the deadline.
	err := d.Do(ctx, func() {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
