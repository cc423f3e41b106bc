package source

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"
)

func jpegFrame(payload ...byte) []byte {
	var f []byte
	f = append(f, jpegSOI...)
	f = append(f, payload...)
	f = append(f, jpegEOI...)
	return f
}

func TestScannerExtractsFrames(t *testing.T) {
	f1 := jpegFrame(1, 2, 3)
	f2 := jpegFrame(4, 5)
	stream := append(append([]byte{}, f1...), f2...)

	s := NewFrameScanner(bytes.NewReader(stream))

	got, err := s.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !bytes.Equal(got, f1) {
		t.Fatalf("Expected %v, got %v", f1, got)
	}

	got, err = s.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !bytes.Equal(got, f2) {
		t.Fatalf("Expected %v, got %v", f2, got)
	}

	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("Expected EOF after last frame, got %v", err)
	}
}

// TestScannerSkipsLeadingGarbage covers reattaching to a stream mid-frame,
// as happens after an encoder restart.
func TestScannerSkipsLeadingGarbage(t *testing.T) {
	frame := jpegFrame(9, 9, 9)
	stream := append([]byte{0x00, 0x42, 0xff, 0x00}, frame...)

	s := NewFrameScanner(bytes.NewReader(stream))
	got, err := s.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Fatalf("Expected %v, got %v", frame, got)
	}
}

// TestScannerSplitMarkers delivers the stream one byte at a time so every
// marker is split across reads.
func TestScannerSplitMarkers(t *testing.T) {
	f1 := jpegFrame(7)
	f2 := jpegFrame(8, 8)
	stream := append([]byte{0xff}, append(append([]byte{}, f1...), f2...)...)

	s := NewFrameScanner(iotest.OneByteReader(bytes.NewReader(stream)))

	for i, want := range [][]byte{f1, f2} {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("Next %d failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Frame %d: expected %v, got %v", i, want, got)
		}
	}
}

// TestScannerDrainsOnEOF verifies a frame fully buffered alongside the
// reader error is still delivered before the error.
func TestScannerDrainsOnEOF(t *testing.T) {
	frame := jpegFrame(1)
	s := NewFrameScanner(iotest.DataErrReader(bytes.NewReader(frame)))

	got, err := s.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Fatalf("Expected %v, got %v", frame, got)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("Expected EOF, got %v", err)
	}
}

func TestScannerIncompleteFrame(t *testing.T) {
	partial := append(append([]byte{}, jpegSOI...), 1, 2, 3)
	s := NewFrameScanner(bytes.NewReader(partial))
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("Expected EOF for truncated frame, got %v", err)
	}
}
