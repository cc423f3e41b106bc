// Binary camstream is a minimal standalone camera streamer: one page, the
// MJPEG feed and a status probe. Handy for bench testing a camera without
// the full dashboard stack.
package main

import (
	"context"
	"flag"
	"html/template"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"agricam/config"
	"agricam/serve"
	"agricam/video"
	"agricam/video/mjpeg"
	"agricam/video/process"
	"agricam/video/source"
)

var (
	addr    = flag.String("addr", ":5000", "Listen address.")
	backend = flag.String("source", config.BackendLibcamera, "Camera backend: usb, libcamera or fake.")
	device  = flag.Int("device", 0, "V4L2 device index for the usb backend.")
	width   = flag.Int("width", 640, "Capture width.")
	height  = flag.Int("height", 480, "Capture height.")
	fps     = flag.Int("fps", 30, "Stream frame rate.")
	debug   = flag.Bool("debug", false, "Enable debug logging.")
)

const page = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Raspberry Pi Camera Stream</title>
    <style>
        body {
            margin: 0;
            padding: 20px;
            font-family: Arial, sans-serif;
            background-color: #f0f0f0;
            display: flex;
            flex-direction: column;
            align-items: center;
            justify-content: center;
            min-height: 100vh;
        }

        h1 {
            color: #333;
            margin-bottom: 20px;
        }

        .container {
            background-color: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
            max-width: 800px;
            width: 100%;
        }

        .video-container {
            position: relative;
            width: 100%;
            padding-bottom: 75%; /* 4:3 aspect ratio */
            background-color: #000;
            border-radius: 5px;
            overflow: hidden;
        }

        .video-container img {
            position: absolute;
            top: 0;
            left: 0;
            width: 100%;
            height: 100%;
            object-fit: contain;
        }

        .info {
            margin-top: 20px;
            padding: 15px;
            background-color: #e8f4f8;
            border-radius: 5px;
            border-left: 4px solid #2196F3;
        }

        .info p {
            margin: 5px 0;
            color: #555;
        }

        .status {
            display: inline-block;
            width: 10px;
            height: 10px;
            background-color: #4CAF50;
            border-radius: 50%;
            margin-right: 8px;
            animation: pulse 2s infinite;
        }

        @keyframes pulse {
            0%, 100% {
                opacity: 1;
            }
            50% {
                opacity: 0.5;
            }
        }

        @media (max-width: 600px) {
            body {
                padding: 10px;
            }

            h1 {
                font-size: 24px;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>🎥 Raspberry Pi Live Camera</h1>

        <div class="video-container">
            <img src="/video_feed" alt="Connecting to stream...">
        </div>

        <div class="info">
            <p><span class="status"></span><strong>Status:</strong> Live</p>
            <p><strong>Resolution:</strong> {{.Width}} x {{.Height}}</p>
            <p><strong>Device:</strong> Raspberry Pi 4B + {{.Backend}}</p>
            <p><strong>Note:</strong> Stream is delivered as MJPEG</p>
        </div>
    </div>
</body>
</html>
`

var pageTemplate = template.Must(template.New("index").Parse(page))

func main() {
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	opts := source.Options{
		Device: *device,
		Width:  *width,
		Height: *height,
		FPS:    *fps,
	}
	var src source.Source
	switch *backend {
	case config.BackendUSB:
		src = source.NewVideoCapture(opts)
	case config.BackendLibcamera:
		src = source.NewLibcamera(opts)
	case config.BackendFake:
		src = source.NewFake(opts)
	default:
		log.Fatalf("Unknown camera backend %q", *backend)
	}

	buf := video.NewFrameBuffer()
	cam := video.NewCamera(src, buf, video.CameraOpts{JPEGQuality: 80})
	running := false
	if err := cam.Start(); err != nil {
		log.Errorf("Camera unavailable, streaming placeholder only: %v", err)
	} else {
		running = true
	}

	placeholder, err := process.BuildPlaceholder(image.Point{X: *width, Y: *height}, 80)
	if err != nil {
		log.Fatalf("Rendering placeholder frame: %v", err)
	}
	stream := mjpeg.NewServer(buf, *fps, placeholder)

	http.Handle("/video_feed", stream)
	http.Handle("/status", &serve.HealthServer{
		Size:   image.Point{X: *width, Y: *height},
		Active: func() bool { return running },
	})
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data := struct {
			Width, Height int
			Backend       string
		}{*width, *height, *backend}
		if err := pageTemplate.Execute(w, data); err != nil {
			log.Errorf("Rendering index: %v", err)
		}
	})

	srv := &http.Server{Addr: *addr}
	go func() {
		log.Infof("Camera stream on %v", *addr)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("HTTP shutdown: %v", err)
	}
}
