package source

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"sync"
	"time"

	"agricam/util"
)

// Fake is a synthetic camera for development boxes without a camera and for
// tests. It renders a moving marker over a flat background, encodes each
// frame to JPEG and paces delivery at the configured rate.
type Fake struct {
	opts Options
	stop *util.Event

	mu      sync.Mutex
	running bool
	seq     int
	last    time.Time
}

func NewFake(opts Options) *Fake {
	if opts.FPS <= 0 {
		opts.FPS = 15
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 640, 480
	}
	return &Fake{
		opts: opts,
		stop: util.NewEvent(),
	}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Size() image.Point {
	return image.Point{X: f.opts.Width, Y: f.opts.Height}
}

func (f *Fake) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stop.HasBeenNotified() {
		return fmt.Errorf("start after stop: %w", ErrDeviceUnavailable)
	}
	f.running = true
	return nil
}

func (f *Fake) Read() (Image, error) {
	f.mu.Lock()
	running := f.running
	f.mu.Unlock()
	if !running || f.stop.HasBeenNotified() {
		return Image{}, fmt.Errorf("read: %w", ErrDeviceUnavailable)
	}

	interval := time.Second / time.Duration(f.opts.FPS)
	if wait := interval - time.Since(f.last); wait > 0 {
		select {
		case <-time.After(wait):
		case <-f.stop.Done():
			return Image{}, fmt.Errorf("read: %w", ErrDeviceUnavailable)
		}
	}
	f.last = time.Now()

	frame, err := f.render()
	if err != nil {
		return Image{}, &CaptureError{Source: f.Name(), Err: err}
	}
	f.seq++
	return Image{JPEG: frame, Time: f.last}, nil
}

// render draws the current frame. The marker sweeps left to right so
// consecutive frames are visibly distinct.
func (f *Fake) render() ([]byte, error) {
	w, h := f.opts.Width, f.opts.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 24, G: 64, B: 32, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	side := h / 6
	if side < 8 {
		side = 8
	}
	x := 0
	if span := w - side; span > 0 {
		x = (f.seq * side / 2) % span
	}
	y := (h - side) / 2
	marker := image.Rect(x, y, x+side, y+side)
	draw.Draw(img, marker, image.NewUniform(color.White), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *Fake) Stop() {
	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
	f.stop.Notify()
}
