package config

import (
	"fmt"
	"image"
)

const (
	BackendUSB       = "usb"
	BackendLibcamera = "libcamera"
	BackendFake      = "fake"
)

type Config struct {
	// Addr is the listen address for the web frontend, e.g. ":5000".
	Addr string

	// Backend selects the camera driver: "usb", "libcamera" or "fake".
	Backend string

	// Device is the V4L2 device index for the usb backend.
	Device int

	Width, Height int
	FPS           int

	// JPEGQuality applies when frames are encoded by the pipeline (1-100).
	JPEGQuality int

	// Overlay enables the timestamp / robot position banner on raw frames.
	Overlay bool

	// StaticDir is served at "/" when non-empty.
	StaticDir string

	// CORSOrigins lists allowed origins for the API. Empty allows any origin,
	// which is what the demo dashboard expects.
	CORSOrigins []string

	// RobotX, RobotY seed the mock robot position (percent of field, 0-100).
	RobotX, RobotY int
}

func Default() *Config {
	return &Config{
		Addr:        ":5000",
		Backend:     BackendUSB,
		Device:      0,
		Width:       640,
		Height:      480,
		FPS:         15,
		JPEGQuality: 80,
		Overlay:     true,
		StaticDir:   "static",
		RobotX:      50,
		RobotY:      50,
	}
}

func (c *Config) Size() image.Point {
	return image.Point{X: c.Width, Y: c.Height}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendUSB, BackendLibcamera, BackendFake:
	default:
		return fmt.Errorf("unknown camera backend %q", c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", c.FPS)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d outside 1-100", c.JPEGQuality)
	}
	return nil
}
