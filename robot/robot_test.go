package robot

import (
	"testing"
	"time"
)

// TestNewClampsPosition verifies the starting position is clamped onto
// the field grid.
func TestNewClampsPosition(t *testing.T) {
	r := New(-5, 150)
	s := r.State()
	if s.X != 0 || s.Y != 100 {
		t.Errorf("Expected position (0, 100), got (%d, %d)", s.X, s.Y)
	}
	if s.Battery != 100 {
		t.Errorf("Expected battery 100, got %d", s.Battery)
	}
	if s.Status != "online" {
		t.Errorf("Expected status online, got %q", s.Status)
	}
}

// TestMoveClamps verifies out-of-range targets are clamped and the
// resulting state is returned.
func TestMoveClamps(t *testing.T) {
	r := New(50, 50)
	s := r.Move(-20, 130)
	if s.X != 0 || s.Y != 100 {
		t.Errorf("Expected position (0, 100), got (%d, %d)", s.X, s.Y)
	}
	x, y := r.Position()
	if x != 0 || y != 100 {
		t.Errorf("Expected stored position (0, 100), got (%d, %d)", x, y)
	}
}

// TestSubscribeNotifiesOnChange verifies each effective move produces
// exactly one update on a subscribed channel.
func TestSubscribeNotifiesOnChange(t *testing.T) {
	r := New(50, 50)
	updates, cancel := r.Subscribe()
	defer cancel()

	r.Move(60, 70)

	select {
	case s := <-updates:
		if s.X != 60 || s.Y != 70 {
			t.Errorf("Expected update (60, 70), got (%d, %d)", s.X, s.Y)
		}
	case <-time.After(time.Second):
		t.Fatal("No update received after a move")
	}

	// A move to the current position is not a change.
	r.Move(60, 70)
	select {
	case s := <-updates:
		t.Errorf("Unexpected update (%d, %d) for a no-op move", s.X, s.Y)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestSubscribeCancel verifies a cancelled subscription no longer
// receives updates.
func TestSubscribeCancel(t *testing.T) {
	r := New(50, 50)
	updates, cancel := r.Subscribe()
	cancel()

	r.Move(10, 10)
	select {
	case s := <-updates:
		t.Errorf("Received update (%d, %d) after cancel", s.X, s.Y)
	case <-time.After(50 * time.Millisecond):
	}
}
