package mjpeg

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"agricam/util"
	"agricam/video"
)

// Part framing, based on implementation by saljam:
// https://github.com/saljam/mjpeg/blob/master/stream.go

const boundaryWord = "frame"
const headerf = "\r\n" +
	"--" + boundaryWord + "\r\n" +
	"Content-Type: image/jpeg\r\n" +
	"Content-Length: %d\r\n" +
	"X-Timestamp: %.6f\r\n" +
	"\r\n"

var (
	streamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agricam_stream_clients",
		Help: "Connected MJPEG stream clients.",
	})
	streamParts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agricam_stream_parts_total",
		Help: "Multipart frames written to stream clients.",
	})
)

// Server streams the frame buffer as multipart/x-mixed-replace. Each
// connection runs its own delivery loop that pulls the latest frame at the
// configured rate, so a stalled client never holds up capture or the other
// viewers; it just misses frames.
type Server struct {
	buf         *video.FrameBuffer
	fps         int
	placeholder []byte
	stop        *util.Event
}

// NewServer builds a stream server delivering fps frames per second.
// placeholder is served while the buffer has no frame yet; pass nil to
// send nothing until the first capture.
func NewServer(buf *video.FrameBuffer, fps int, placeholder []byte) *Server {
	if fps <= 0 {
		fps = 15
	}
	return &Server{
		buf:         buf,
		fps:         fps,
		placeholder: placeholder,
		stop:        util.NewEvent(),
	}
}

// Close terminates all connected client loops. Used during shutdown so the
// HTTP server can drain.
func (s *Server) Close() {
	s.stop.Notify()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clog := log.WithFields(log.Fields{
		"addr":    r.RemoteAddr,
		"session": uuid.New().String(),
	})
	clog.Info("MJPEG stream connected")
	streamClients.Inc()
	defer streamClients.Dec()
	defer clog.Info("MJPEG stream disconnected")

	w.Header().Set("Content-Type", "multipart/x-mixed-replace;boundary="+boundaryWord)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	flusher, _ := w.(http.Flusher)
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	// Part assembly buffer, reused across frames. Header and payload go
	// out in a single Write so a failed write never leaves a half part
	// on the wire.
	var part []byte

	for {
		payload, ts := s.latest()
		if payload != nil {
			header := fmt.Sprintf(headerf, len(payload), float64(ts.UnixNano())/1e9)
			need := len(header) + len(payload)
			if cap(part) < need {
				part = make([]byte, need*2)
			}
			n := copy(part, header)
			n += copy(part[n:], payload)

			if _, err := w.Write(part[:n]); err != nil {
				clog.Debugf("Stream write: %v", err)
				return
			}
			streamParts.Inc()
			if flusher != nil {
				flusher.Flush()
			}
		}

		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		case <-s.stop.Done():
			return
		}
	}
}

// latest picks the frame to deliver next: the newest published frame, or
// the placeholder while nothing has been captured yet.
func (s *Server) latest() ([]byte, time.Time) {
	if frame, ok := s.buf.Latest(); ok {
		return frame.JPEG, frame.Time
	}
	return s.placeholder, time.Now()
}
