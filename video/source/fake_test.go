package source

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestFakeProducesJPEGFrames(t *testing.T) {
	f := NewFake(Options{Width: 160, Height: 120, FPS: 100})
	if err := f.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer f.Stop()

	img, err := f.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !img.Encoded() {
		t.Fatal("Expected an encoded frame")
	}
	if !bytes.HasPrefix(img.JPEG, jpegSOI) || !bytes.HasSuffix(img.JPEG, jpegEOI) {
		t.Fatal("Frame is not a complete JPEG")
	}
	if img.Time.IsZero() {
		t.Error("Frame missing timestamp")
	}

	second, err := f.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if bytes.Equal(img.JPEG, second.JPEG) {
		t.Error("Consecutive frames are identical; marker did not move")
	}
}

func TestFakePacing(t *testing.T) {
	f := NewFake(Options{Width: 64, Height: 48, FPS: 50})
	if err := f.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer f.Stop()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := f.Read(); err != nil {
			t.Fatalf("Read %d failed: %v", i, err)
		}
	}
	// Two inter-frame gaps at 50fps is 40ms; allow generous slack under a
	// loaded test runner.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Three frames arrived in %v, pacing not applied", elapsed)
	}
}

func TestFakeStop(t *testing.T) {
	f := NewFake(Options{Width: 64, Height: 48, FPS: 100})
	if err := f.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	f.Stop()
	f.Stop()

	if _, err := f.Read(); !errors.Is(err, ErrDeviceUnavailable) {
		t.Fatalf("Expected ErrDeviceUnavailable after Stop, got %v", err)
	}
	if err := f.Start(); !errors.Is(err, ErrDeviceUnavailable) {
		t.Fatalf("Expected ErrDeviceUnavailable restarting a stopped source, got %v", err)
	}
}
