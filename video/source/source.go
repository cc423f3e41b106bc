package source

import (
	"errors"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// ErrDeviceUnavailable is returned by Start when the underlying camera
// device cannot be opened. It is fatal to the capture feature; callers
// surface it instead of retrying here.
var ErrDeviceUnavailable = errors.New("camera device unavailable")

// CaptureError wraps a transient per-frame acquisition failure (device busy,
// read timeout, short read). Callers log it and continue the loop.
type CaptureError struct {
	Source string
	Err    error
}

func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s capture failed: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s capture failed", e.Source)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a per-frame failure the capture loop
// should ride through rather than abort on.
func IsTransient(err error) bool {
	var ce *CaptureError
	return errors.As(err, &ce)
}

// Image is one captured frame. A backend fills exactly one representation:
// Mat for raw pixel data that still needs encoding, or JPEG for backends
// that emit compressed frames directly. JPEG bytes must not be modified
// after the image is handed over.
type Image struct {
	Mat  gocv.Mat
	JPEG []byte
	Time time.Time

	pool *matPool
}

// Encoded reports whether the frame is already JPEG compressed.
func (i *Image) Encoded() bool {
	return i.JPEG != nil
}

// Release returns the Mat of a raw frame for reuse, or frees it when the
// backend does not pool. Safe on encoded frames. Every raw Image must be
// released exactly once.
func (i *Image) Release() {
	if i.JPEG != nil {
		return
	}
	if i.pool != nil {
		i.pool.Put(i.Mat)
		return
	}
	i.Mat.Close()
}

// Source abstracts one camera backend. Implementations are not safe for
// concurrent Read calls; a single acquisition loop owns the source.
type Source interface {
	// Start opens the device. Returns an error wrapping
	// ErrDeviceUnavailable if the device cannot be opened.
	Start() error

	// Read captures one frame. Transient failures are reported as
	// *CaptureError; the caller should log and try again.
	Read() (Image, error)

	// Size returns the configured capture resolution.
	Size() image.Point

	// Name identifies the backend in logs.
	Name() string

	// Stop releases the device. Idempotent, and safe to call while a
	// Read is blocked; the read returns an error once the device is
	// gone.
	Stop()
}

// Options carries the startup camera configuration. It is fixed for the
// lifetime of a source; changing resolution or rate means building a new
// source.
type Options struct {
	Device int
	Width  int
	Height int
	FPS    int
}
