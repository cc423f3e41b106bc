// Binary agricamd is the inspection rover backend: it captures the camera,
// streams MJPEG to the dashboard and answers the dashboard's status and
// control API.
package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"agricam/config"
	"agricam/robot"
	"agricam/serve"
	"agricam/video"
	"agricam/video/mjpeg"
	"agricam/video/process"
	"agricam/video/source"
)

var (
	configPath = flag.String("config", "", "Path to JSON config file, watched for changes.")
	addr       = flag.String("addr", "", "Listen address override.")
	backend    = flag.String("source", "", "Camera backend override: usb, libcamera or fake.")
	staticDir  = flag.String("static", "", "Dashboard directory override.")
	debug      = flag.Bool("debug", false, "Enable debug logging.")
)

func buildSource(cfg *config.Config) source.Source {
	opts := source.Options{
		Device: cfg.Device,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	}
	switch cfg.Backend {
	case config.BackendLibcamera:
		return source.NewLibcamera(opts)
	case config.BackendFake:
		return source.NewFake(opts)
	default:
		return source.NewVideoCapture(opts)
	}
}

func main() {
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx := context.Background()
	if *configPath != "" {
		if err := config.Load(ctx, *configPath); err != nil {
			log.Fatalf("Loading config %v: %v", *configPath, err)
		}
	}
	cfg := *config.Get()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *staticDir != "" {
		cfg.StaticDir = *staticDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	config.Set(&cfg)

	rob := robot.New(cfg.RobotX, cfg.RobotY)

	buf := video.NewFrameBuffer()
	cam := video.NewCamera(buildSource(&cfg), buf, video.CameraOpts{
		JPEGQuality: cfg.JPEGQuality,
		Overlay:     cfg.Overlay,
		Position:    rob.Position,
	})
	running := false
	if err := cam.Start(); err != nil {
		log.Errorf("Camera unavailable, streaming placeholder only: %v", err)
	} else {
		running = true
	}

	placeholder, err := process.BuildPlaceholder(cfg.Size(), cfg.JPEGQuality)
	if err != nil {
		log.Fatalf("Rendering placeholder frame: %v", err)
	}
	stream := mjpeg.NewServer(buf, cfg.FPS, placeholder)

	http.Handle("/video_feed", stream)
	http.Handle("/api/device/status", &serve.DeviceStatusServer{})
	http.Handle("/api/robot/status", &serve.RobotStatusServer{Robot: rob})
	http.Handle("/api/robot/control", &serve.RobotControlServer{Robot: rob})
	http.Handle("/api/stats/core", &serve.CoreStatsServer{})
	http.Handle("/api/pests", &serve.PestsServer{})
	http.Handle("/api/solution", &serve.SolutionServer{})
	http.Handle("/api/solution/bottom", &serve.ResourcesServer{})
	http.Handle("/api/events", serve.NewStatusSocket(rob))
	http.Handle("/status", &serve.HealthServer{
		Size:   cfg.Size(),
		Active: func() bool { return running },
	})
	http.Handle("/metrics", promhttp.Handler())
	if cfg.StaticDir != "" {
		http.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), http.DefaultServeMux))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}
	go func() {
		log.Infof("Serving dashboard on %v", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Infof("Caught signal %v, shutting down", sig)

	if running {
		cam.Stop()
	}
	stream.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP shutdown: %v", err)
	}
	log.Info("Shutdown complete")
}
