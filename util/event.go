package util

import (
	"sync"
)

// Event is a one-shot notification. It starts unset, can be set exactly once
// from any goroutine, and exposes a channel usable in select statements.
// Notifying an already-notified event is a no-op.
type Event struct {
	once sync.Once
	done chan struct{}
}

func NewEvent() *Event {
	return &Event{
		done: make(chan struct{}),
	}
}

// Notify sets the event. Safe to call any number of times.
func (e *Event) Notify() {
	e.once.Do(func() {
		close(e.done)
	})
}

// Done returns a channel that is closed once the event has been notified.
func (e *Event) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until the event has been notified.
func (e *Event) Wait() {
	<-e.done
}

func (e *Event) HasBeenNotified() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}
