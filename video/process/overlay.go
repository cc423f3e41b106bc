package process

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"
)

// Colors are RGBA; gocv maps them onto OpenCV's BGR ordering.
var (
	colorTimestamp = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colorPosition  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// DrawOverlay stamps the capture time and the rover position onto the top
// left corner of the frame.
func DrawOverlay(m *gocv.Mat, when time.Time, x, y int) {
	font := gocv.FontHersheySimplex

	text := when.Format("2006-01-02 15:04:05")
	gocv.PutText(m, text, image.Point{X: 10, Y: 30}, font, 0.6, colorTimestamp, 2)

	pos := fmt.Sprintf("Robot: (%d, %d)", x, y)
	gocv.PutText(m, pos, image.Point{X: 10, Y: 60}, font, 0.5, colorPosition, 1)
}
