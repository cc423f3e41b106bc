package process

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

const placeholderText = "Camera Not Available"

// BuildPlaceholder renders the frame streamed to clients before the camera
// has produced anything: the notice centered on a black background.
func BuildPlaceholder(size image.Point, quality int) ([]byte, error) {
	m := gocv.Zeros(size.Y, size.X, gocv.MatTypeCV8UC3)
	defer m.Close()

	font := gocv.FontHersheySimplex
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	sz := gocv.GetTextSize(placeholderText, font, 1, 2)
	org := image.Point{X: (size.X - sz.X) / 2, Y: (size.Y + sz.Y) / 2}
	gocv.PutText(&m, placeholderText, org, font, 1, white, 2)

	return EncodeJPEG(&m, quality)
}
