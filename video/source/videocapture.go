package source

import (
	"fmt"
	"image"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// VideoCapture reads raw frames from a V4L2 device through OpenCV. This is
// the backend for USB webcams on the robot.
type VideoCapture struct {
	opts Options

	mu      sync.Mutex
	cap     *gocv.VideoCapture
	pool    *matPool
	stopped bool
}

func NewVideoCapture(opts Options) *VideoCapture {
	return &VideoCapture{opts: opts}
}

func (v *VideoCapture) Name() string {
	return fmt.Sprintf("usb:%d", v.opts.Device)
}

func (v *VideoCapture) Size() image.Point {
	return image.Point{X: v.opts.Width, Y: v.opts.Height}
}

func (v *VideoCapture) Start() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cap != nil {
		return nil
	}
	cap, err := gocv.OpenVideoCapture(v.opts.Device)
	if err != nil {
		return fmt.Errorf("open /dev/video%d: %w: %v", v.opts.Device, ErrDeviceUnavailable, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return fmt.Errorf("open /dev/video%d: %w", v.opts.Device, ErrDeviceUnavailable)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(v.opts.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(v.opts.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(v.opts.FPS))

	log.WithField("device", v.opts.Device).Infof(
		"Camera opened at %dx%d@%d", v.opts.Width, v.opts.Height, v.opts.FPS)
	v.cap = cap
	v.pool = newMatPool()
	v.stopped = false
	return nil
}

// Read captures one frame. The device lock is held for the duration of
// the read, so a concurrent Stop waits for the frame in flight instead of
// closing the handle underneath it.
func (v *VideoCapture) Read() (Image, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stopped || v.cap == nil {
		return Image{}, fmt.Errorf("read: %w", ErrDeviceUnavailable)
	}

	mat := v.pool.Get()
	if ok := v.cap.Read(&mat); !ok {
		v.pool.Put(mat)
		return Image{}, &CaptureError{Source: v.Name(), Err: fmt.Errorf("device read returned no frame")}
	}
	if mat.Empty() {
		v.pool.Put(mat)
		return Image{}, &CaptureError{Source: v.Name(), Err: fmt.Errorf("device returned empty frame")}
	}
	return Image{Mat: mat, Time: time.Now(), pool: v.pool}, nil
}

// Stop releases the device. The release happens exactly once regardless of
// how many times Stop is called.
func (v *VideoCapture) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stopped {
		return
	}
	v.stopped = true
	if v.cap != nil {
		if err := v.cap.Close(); err != nil {
			log.Warnf("Closing capture device: %v", err)
		}
		v.cap = nil
	}
	if v.pool != nil {
		v.pool.Close()
		v.pool = nil
	}
	log.WithField("device", v.opts.Device).Info("Camera released")
}
