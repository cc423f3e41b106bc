package source

import (
	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// matLimit bounds outstanding mats. Hitting it means Images are not being
// released somewhere downstream.
const matLimit = 500

// matPool recycles mats between captures. Mat pixel data lives on the C
// heap where the Go allocator cannot see it, so allocating one per frame
// at capture rate churns memory the GC never accounts for.
type matPool struct {
	requests chan chan gocv.Mat
	returns  chan gocv.Mat
	quit     chan bool
}

func newMatPool() *matPool {
	p := &matPool{
		requests: make(chan chan gocv.Mat),
		returns:  make(chan gocv.Mat),
		quit:     make(chan bool),
	}
	go p.run()
	return p
}

func (p *matPool) run() {
	var idle []gocv.Mat
	allocated := 0
	closed := false
	for {
		select {
		case <-p.quit:
			closed = true
			for _, m := range idle {
				m.Close()
				allocated--
			}
			idle = nil
		case m := <-p.returns:
			if closed {
				m.Close()
				allocated--
			} else {
				idle = append(idle, m)
			}
		case r := <-p.requests:
			var m gocv.Mat
			if len(idle) > 0 {
				m, idle = idle[0], idle[1:]
			} else {
				m = gocv.NewMat()
				allocated++
				if allocated > matLimit {
					log.Fatalf("Mat pool exhausted; an Image is likely not being released")
				}
			}
			r <- m
		}
	}
}

// Get returns a mat for the next capture, reusing a released one when
// available.
func (p *matPool) Get() gocv.Mat {
	r := make(chan gocv.Mat)
	p.requests <- r
	return <-r
}

// Put hands a mat back for reuse. After Close the mat is freed instead.
func (p *matPool) Put(m gocv.Mat) {
	p.returns <- m
}

// Close frees the idle mats and stops recycling. Mats still in flight are
// freed as they are released.
func (p *matPool) Close() {
	p.quit <- true
}
