package video

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricam_frames_captured_total",
		Help: "Frames successfully read from the camera source.",
	})
	captureErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricam_capture_errors_total",
		Help: "Transient frame acquisition failures.",
	})
	encodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricam_encode_errors_total",
		Help: "Frames dropped because JPEG encoding failed.",
	})
	cameraUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agricam_camera_up",
		Help: "Whether the acquisition loop is running.",
	})
)
