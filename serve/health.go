package serve

import (
	"fmt"
	"image"
	"net/http"
)

// Health is the liveness probe payload used by the kiosk launcher.
type Health struct {
	Status     string `json:"status"`
	Camera     string `json:"camera"`
	Resolution string `json:"resolution"`
}

type HealthServer struct {
	Size image.Point

	// Active reports whether the acquisition loop is delivering frames.
	// nil means the camera state is not tracked and reads as active.
	Active func() bool
}

func (s *HealthServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	camera := "active"
	if s.Active != nil && !s.Active() {
		camera = "inactive"
	}
	writeJSON(w, http.StatusOK, &Health{
		Status:     "running",
		Camera:     camera,
		Resolution: fmt.Sprintf("%dx%d", s.Size.X, s.Size.Y),
	})
}
