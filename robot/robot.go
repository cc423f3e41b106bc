package robot

import (
	"sync"
)

// Coordinates are percentages of the field, 0 to 100 on both axes.
const (
	coordMin = 0
	coordMax = 100
)

// State is a snapshot of the rover.
type State struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Battery int    `json:"battery"`
	Status  string `json:"status"`
}

// Robot tracks the demo rover the dashboard drives around. A real
// deployment would swap this for the motion controller; the HTTP and
// overlay surfaces stay the same.
type Robot struct {
	mu        sync.Mutex
	state     State
	listeners map[chan State]bool
}

func New(x, y int) *Robot {
	return &Robot{
		state: State{
			X:       clamp(x),
			Y:       clamp(y),
			Battery: 100,
			Status:  "online",
		},
		listeners: make(map[chan State]bool),
	}
}

// State returns the current snapshot.
func (r *Robot) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Position returns the current coordinates. Used by the frame overlay.
func (r *Robot) Position() (x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.X, r.state.Y
}

// Move drives the rover to (x, y), clamped to the field bounds, and
// returns the resulting state. Listeners are notified only when the
// position actually changed.
func (r *Robot) Move(x, y int) State {
	r.mu.Lock()
	prev := r.state
	r.state.X = clamp(x)
	r.state.Y = clamp(y)
	next := r.state
	changed := next != prev
	if changed {
		for c := range r.listeners {
			select {
			case c <- next:
			default:
				// Skip listeners not keeping up.
			}
		}
	}
	r.mu.Unlock()
	return next
}

// Subscribe registers for position updates. The returned cancel removes
// the listener and must be called when the consumer goes away.
func (r *Robot) Subscribe() (<-chan State, func()) {
	c := make(chan State, 4)
	r.mu.Lock()
	r.listeners[c] = true
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		delete(r.listeners, c)
		r.mu.Unlock()
	}
	return c, cancel
}

func clamp(v int) int {
	if v < coordMin {
		return coordMin
	}
	if v > coordMax {
		return coordMax
	}
	return v
}
