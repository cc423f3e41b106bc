package video

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

func TestFrameBufferEmpty(t *testing.T) {
	b := NewFrameBuffer()
	if _, ok := b.Latest(); ok {
		t.Fatal("Latest reported a frame before any publish")
	}
	if seq := b.Sequence(); seq != 0 {
		t.Fatalf("Expected sequence 0, got %d", seq)
	}
}

func TestFrameBufferReadback(t *testing.T) {
	b := NewFrameBuffer()
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	when := time.Now()
	b.Publish(payload, when)

	frame, ok := b.Latest()
	if !ok {
		t.Fatal("Latest reported empty after publish")
	}
	if !bytes.Equal(frame.JPEG, payload) {
		t.Fatalf("Expected %v, got %v", payload, frame.JPEG)
	}
	if !frame.Time.Equal(when) {
		t.Errorf("Expected time %v, got %v", when, frame.Time)
	}
	if frame.Seq != 1 {
		t.Errorf("Expected sequence 1, got %d", frame.Seq)
	}
}

func TestFrameBufferLatestWins(t *testing.T) {
	b := NewFrameBuffer()
	b.Publish([]byte("first"), time.Now())
	b.Publish([]byte("second"), time.Now())

	frame, ok := b.Latest()
	if !ok {
		t.Fatal("Latest reported empty")
	}
	if string(frame.JPEG) != "second" {
		t.Fatalf("Expected latest frame, got %q", frame.JPEG)
	}
	if frame.Seq != 2 {
		t.Errorf("Expected sequence 2, got %d", frame.Seq)
	}
}

// TestFrameBufferNoTornReads hammers the buffer with publishes of
// self-consistent frames while readers verify every observed frame is one
// of the published values, never a mix.
func TestFrameBufferNoTornReads(t *testing.T) {
	b := NewFrameBuffer()

	const (
		frames    = 500
		frameSize = 1024
		readers   = 4
	)

	// Each published frame is filled with a single byte value, so any torn
	// read would show up as a non-uniform frame.
	makeFrame := func(v byte) []byte {
		f := make([]byte, frameSize)
		for i := range f {
			f[i] = v
		}
		return f
	}

	var wg sync.WaitGroup
	stop := make(chan bool)

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var lastSeq uint64
			for {
				select {
				case <-stop:
					return
				default:
				}
				frame, ok := b.Latest()
				if !ok {
					continue
				}
				if frame.Seq < lastSeq {
					t.Errorf("Sequence went backwards: %d after %d", frame.Seq, lastSeq)
					return
				}
				lastSeq = frame.Seq
				if len(frame.JPEG) != frameSize {
					t.Errorf("Expected %d byte frame, got %d", frameSize, len(frame.JPEG))
					return
				}
				for i, v := range frame.JPEG {
					if v != frame.JPEG[0] {
						t.Errorf("Torn frame: byte %d is %d, byte 0 is %d", i, v, frame.JPEG[0])
						return
					}
				}
			}
		}()
	}

	for i := 0; i < frames; i++ {
		b.Publish(makeFrame(byte(i)), time.Now())
	}
	close(stop)
	wg.Wait()

	if seq := b.Sequence(); seq != frames {
		t.Errorf("Expected %d publishes recorded, got %d", frames, seq)
	}
}
