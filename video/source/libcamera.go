package source

import (
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Binaries to try in order. Raspberry Pi OS bookworm renamed the
// libcamera-apps to rpicam-*.
var libcameraBinaries = []string{"rpicam-vid", "libcamera-vid"}

// Libcamera captures from the Pi camera module by running the libcamera
// MJPEG encoder as a child process and scanning frames off its stdout. The
// frames arrive already JPEG compressed, so this backend skips the encode
// stage entirely.
type Libcamera struct {
	opts Options

	mu      sync.Mutex
	cmd     *exec.Cmd
	scanner *FrameScanner
	stderr  io.WriteCloser
	stopped bool
}

func NewLibcamera(opts Options) *Libcamera {
	return &Libcamera{opts: opts}
}

func (l *Libcamera) Name() string { return "libcamera" }

func (l *Libcamera) Size() image.Point {
	return image.Point{X: l.opts.Width, Y: l.opts.Height}
}

func (l *Libcamera) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cmd != nil {
		return nil
	}
	l.stopped = false
	return l.startLocked()
}

func (l *Libcamera) startLocked() error {
	bin, err := lookupCameraBinary()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	cmd := exec.Command(bin,
		"--timeout", "0", // Run until killed.
		"--codec", "mjpeg",
		"--width", strconv.Itoa(l.opts.Width),
		"--height", strconv.Itoa(l.opts.Height),
		"--framerate", strconv.Itoa(l.opts.FPS),
		"--nopreview",
		"--output", "-", // Stream to stdout.
	)
	stderr := log.StandardLogger().WriterLevel(log.DebugLevel)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stderr.Close()
		return fmt.Errorf("camera pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		stderr.Close()
		return fmt.Errorf("starting %s: %w: %v", bin, ErrDeviceUnavailable, err)
	}

	log.WithField("pid", cmd.Process.Pid).Infof(
		"Started %s at %dx%d@%d", bin, l.opts.Width, l.opts.Height, l.opts.FPS)
	l.cmd = cmd
	l.scanner = NewFrameScanner(stdout)
	l.stderr = stderr
	return nil
}

func lookupCameraBinary() (string, error) {
	for _, bin := range libcameraBinaries {
		if path, err := exec.LookPath(bin); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("none of %v found in PATH", libcameraBinaries)
}

func (l *Libcamera) Read() (Image, error) {
	l.mu.Lock()
	scanner := l.scanner
	stopped := l.stopped
	l.mu.Unlock()
	if stopped || scanner == nil {
		return Image{}, fmt.Errorf("read: %w", ErrDeviceUnavailable)
	}

	frame, err := scanner.Next()
	if err != nil {
		if l.isStopped() {
			return Image{}, fmt.Errorf("read: %w", ErrDeviceUnavailable)
		}
		// The encoder died underneath us. Relaunch it so the next Read
		// picks up a fresh stream.
		l.restart()
		return Image{}, &CaptureError{Source: l.Name(), Err: err}
	}
	return Image{JPEG: frame, Time: time.Now()}, nil
}

func (l *Libcamera) isStopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

func (l *Libcamera) restart() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.teardownLocked()
	if err := l.startLocked(); err != nil {
		log.Errorf("Camera process restart failed: %v", err)
	}
}

// Stop kills the encoder process. Idempotent.
func (l *Libcamera) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.teardownLocked()
	log.Info("Camera process released")
}

func (l *Libcamera) teardownLocked() {
	if l.cmd == nil {
		return
	}
	if err := l.cmd.Process.Kill(); err != nil {
		log.Warnf("Killing camera process: %v", err)
	}
	// Wait reaps the child and closes the stdout pipe, which unblocks any
	// scanner read in flight.
	if err := l.cmd.Wait(); err != nil {
		log.Debugf("Camera process exit: %v", err)
	}
	l.stderr.Close()
	l.cmd = nil
	l.scanner = nil
	l.stderr = nil
}
