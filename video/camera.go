package video

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"agricam/util"
	"agricam/video/process"
	"agricam/video/source"
)

// CameraOpts configures the acquisition loop.
type CameraOpts struct {
	JPEGQuality int
	Overlay     bool

	// Position supplies the rover coordinates drawn by the overlay.
	Position func() (x, y int)

	// RetryDelay is the pause after a transient capture failure.
	RetryDelay time.Duration
}

// Camera owns the acquisition loop: it pulls frames from a source, encodes
// them and publishes the result to a frame buffer. One Camera per source.
type Camera struct {
	src  source.Source
	buf  *FrameBuffer
	opts CameraOpts

	stop     *util.Event
	done     chan bool
	stopOnce sync.Once
}

func NewCamera(src source.Source, buf *FrameBuffer, opts CameraOpts) *Camera {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}
	return &Camera{
		src:  src,
		buf:  buf,
		opts: opts,
		stop: util.NewEvent(),
		done: make(chan bool),
	}
}

// Start opens the device and launches the acquisition loop. On error the
// loop is not running and Stop must not be called.
func (c *Camera) Start() error {
	if err := c.src.Start(); err != nil {
		return err
	}
	go c.loop()
	return nil
}

func (c *Camera) loop() {
	defer close(c.done)
	cameraUp.Set(1)
	defer cameraUp.Set(0)
	log.WithField("source", c.src.Name()).Info("Acquisition started")

	for !c.stop.HasBeenNotified() {
		img, err := c.src.Read()
		if err != nil {
			if source.IsTransient(err) {
				captureErrors.Inc()
				log.Warnf("Dropping frame: %v", err)
				select {
				case <-time.After(c.opts.RetryDelay):
				case <-c.stop.Done():
				}
				continue
			}
			if !c.stop.HasBeenNotified() {
				log.Errorf("Acquisition aborted: %v", err)
			}
			return
		}

		frame, err := c.encode(img)
		img.Release()
		if err != nil {
			encodeErrors.Inc()
			log.Errorf("Encoding frame: %v", err)
			continue
		}
		c.buf.Publish(frame, img.Time)
		framesCaptured.Inc()
	}
}

// encode produces the JPEG for a captured image. Sources that deliver
// compressed frames pass through untouched; raw frames get the overlay and
// a fresh encode.
func (c *Camera) encode(img source.Image) ([]byte, error) {
	if img.Encoded() {
		return img.JPEG, nil
	}
	if c.opts.Overlay {
		x, y := 0, 0
		if c.opts.Position != nil {
			x, y = c.opts.Position()
		}
		process.DrawOverlay(&img.Mat, img.Time, x, y)
	}
	return process.EncodeJPEG(&img.Mat, c.opts.JPEGQuality)
}

// Stop releases the device, which unblocks any read in flight, then waits
// for the loop to drain. Safe to call more than once; the device is
// released exactly once.
func (c *Camera) Stop() {
	c.stop.Notify()
	c.stopOnce.Do(c.src.Stop)
	<-c.done
	log.WithField("source", c.src.Name()).Info("Acquisition stopped")
}
