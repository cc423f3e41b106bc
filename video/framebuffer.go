package video

import (
	"sync"
	"time"
)

// Frame is one encoded JPEG image ready for delivery to stream clients.
// The JPEG bytes are immutable once the frame is published; producers hand
// the slice over and never touch it again, and consumers only read it.
type Frame struct {
	JPEG []byte
	Time time.Time
	Seq  uint64
}

// FrameBuffer is a single slot holding the most recent frame. A publish
// replaces the slot wholesale, so a reader either sees the previous frame
// or the new one, never a mix. Slow readers simply miss frames.
type FrameBuffer struct {
	mu    sync.RWMutex
	frame Frame
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Publish stores jpeg as the latest frame. The caller must not modify the
// slice afterward.
func (b *FrameBuffer) Publish(jpeg []byte, when time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = Frame{
		JPEG: jpeg,
		Time: when,
		Seq:  b.frame.Seq + 1,
	}
}

// Latest returns the most recent frame. ok is false until the first
// publish.
func (b *FrameBuffer) Latest() (Frame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frame, b.frame.Seq > 0
}

// Sequence returns the number of frames published so far.
func (b *FrameBuffer) Sequence() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frame.Seq
}
